package banding

import (
	"fmt"
	"math"
	"sort"
)

type Mode string

const (
	// ModeThreshold matches the first band whose Upper is >= |value|.
	ModeThreshold Mode = "threshold"
	// ModeRange matches the first band whose [Lower, Upper] contains value.
	ModeRange Mode = "range"
)

type Band struct {
	Lower  float64 `yaml:"lower,omitempty" json:"lower,omitempty"`
	Upper  float64 `yaml:"upper" json:"upper"`
	Status Status  `yaml:"status" json:"status"`
}

// Bands is an ordered band table for one metric. Values matching no band get
// Default, which makes classification total.
type Bands struct {
	Mode    Mode   `yaml:"mode" json:"mode"`
	Bands   []Band `yaml:"bands" json:"bands"`
	Default Status `yaml:"default" json:"default"`
}

// NewBands validates a band table and sorts it by ascending Upper.
func NewBands(mode Mode, def Status, bands ...Band) (Bands, error) {
	b := Bands{Mode: mode, Default: def, Bands: append([]Band(nil), bands...)}
	if err := b.normalize(); err != nil {
		return Bands{}, err
	}
	return b, nil
}

func (b *Bands) normalize() error {
	if b.Mode == "" {
		b.Mode = ModeThreshold
	}
	if b.Mode != ModeThreshold && b.Mode != ModeRange {
		return fmt.Errorf("unknown band mode %q", b.Mode)
	}
	if b.Default == 0 {
		b.Default = NeedsWork
	}
	if !b.Default.Valid() {
		return fmt.Errorf("invalid default status %d", int(b.Default))
	}

	for i, band := range b.Bands {
		if !band.Status.Valid() {
			return fmt.Errorf("band %d: invalid status %d", i, int(band.Status))
		}
		if math.IsNaN(band.Upper) || math.IsNaN(band.Lower) {
			return fmt.Errorf("band %d: NaN bound", i)
		}
		if b.Mode == ModeRange && band.Lower > band.Upper {
			return fmt.Errorf("band %d: lower %f above upper %f", i, band.Lower, band.Upper)
		}
	}

	sort.SliceStable(b.Bands, func(i, j int) bool {
		return b.Bands[i].Upper < b.Bands[j].Upper
	})
	return nil
}

// Classify maps value to exactly one status. NaN is treated as +Inf and so
// falls through to the default status.
func Classify(value float64, bands Bands) Status {
	if math.IsNaN(value) {
		value = math.Inf(1)
	}

	def := bands.Default
	if !def.Valid() {
		def = NeedsWork
	}

	switch bands.Mode {
	case ModeRange:
		if math.IsInf(value, 0) {
			return def
		}
		for _, band := range bands.Bands {
			if value >= band.Lower && value <= band.Upper {
				return band.Status
			}
		}
	default:
		abs := math.Abs(value)
		for _, band := range bands.Bands {
			if band.Upper >= abs {
				return band.Status
			}
		}
	}

	return def
}
