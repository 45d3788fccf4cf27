package banding

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/kdimtricp/swingcore/internal/biomechanics"
	"gopkg.in/yaml.v3"
)

// SwingPath is the deviation from the swing plane in degrees, computed by the
// external scoring layer and classified here.
const SwingPath = "swing_path"

// Registry holds the band table of each metric. It is read-only once built.
type Registry struct {
	bands map[string]Bands
}

type registryFile struct {
	Metrics map[string]Bands `yaml:"metrics"`
}

func NewRegistry(tables map[string]Bands) (*Registry, error) {
	r := &Registry{bands: make(map[string]Bands, len(tables))}
	for name, b := range tables {
		if err := b.normalize(); err != nil {
			return nil, fmt.Errorf("metric %s: %w", name, err)
		}
		r.bands[name] = b
	}
	return r, nil
}

// DefaultRegistry returns the built-in band tables.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultTables())
	if err != nil {
		panic(err)
	}
	return r
}

// LoadRegistry reads YAML band tables and overlays them on the defaults.
func LoadRegistry(rd io.Reader) (*Registry, error) {
	var file registryFile
	if err := yaml.NewDecoder(rd).Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode band file: %w", err)
	}

	tables := defaultTables()
	for name, b := range file.Metrics {
		tables[name] = b
	}
	return NewRegistry(tables)
}

func LoadRegistryFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open band file: %w", err)
	}
	defer f.Close()
	return LoadRegistry(f)
}

func (r *Registry) Get(metric string) (Bands, bool) {
	b, ok := r.bands[metric]
	return b, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.bands))
	for name := range r.bands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClassifyMetric classifies a metric by name. It reports false for undefined
// values and metrics without a band table.
func (r *Registry) ClassifyMetric(metric string, v biomechanics.MetricValue) (Status, bool) {
	if !v.Defined {
		return 0, false
	}
	b, ok := r.bands[metric]
	if !ok {
		return 0, false
	}
	return Classify(v.Value, b), true
}

// Classify classifies every defined metric in s that has a band table.
func (r *Registry) Classify(s biomechanics.Snapshot) map[string]Status {
	out := make(map[string]Status)
	for _, m := range s.Metrics() {
		if status, ok := r.ClassifyMetric(m.Name, m.Value); ok {
			out[m.Name] = status
		}
	}
	return out
}

func defaultTables() map[string]Bands {
	threshold := func(e, g, f float64) Bands {
		return Bands{Mode: ModeThreshold, Default: NeedsWork, Bands: []Band{
			{Upper: e, Status: Excellent},
			{Upper: g, Status: Good},
			{Upper: f, Status: Fair},
		}}
	}
	// nested ranges, each wider than the last
	ranges := func(e, g, f [2]float64) Bands {
		return Bands{Mode: ModeRange, Default: NeedsWork, Bands: []Band{
			{Lower: e[0], Upper: e[1], Status: Excellent},
			{Lower: g[0], Upper: g[1], Status: Good},
			{Lower: f[0], Upper: f[1], Status: Fair},
		}}
	}

	return map[string]Bands{
		SwingPath:                     threshold(2, 4, 6),
		biomechanics.HipRotation:      threshold(5, 10, 15),
		biomechanics.ShoulderRotation: threshold(8, 15, 25),
		biomechanics.XFactor:          ranges([2]float64{35, 55}, [2]float64{25, 60}, [2]float64{15, 70}),
		biomechanics.SpineAngle:       ranges([2]float64{170, 180}, [2]float64{160, 180}, [2]float64{150, 180}),
		biomechanics.LeftElbow:        ranges([2]float64{165, 180}, [2]float64{150, 180}, [2]float64{135, 180}),
		biomechanics.RightElbow:       ranges([2]float64{165, 180}, [2]float64{150, 180}, [2]float64{135, 180}),
		biomechanics.LeftKnee:         ranges([2]float64{150, 170}, [2]float64{140, 175}, [2]float64{130, 180}),
		biomechanics.RightKnee:        ranges([2]float64{150, 170}, [2]float64{140, 175}, [2]float64{130, 180}),
		biomechanics.StanceWidth:      ranges([2]float64{0.18, 0.28}, [2]float64{0.14, 0.32}, [2]float64{0.10, 0.36}),
		biomechanics.BalanceOffset:    ranges([2]float64{0.30, 0.40}, [2]float64{0.25, 0.45}, [2]float64{0.20, 0.50}),
		biomechanics.LiveBalance:      threshold(25, 50, 75),
	}
}
