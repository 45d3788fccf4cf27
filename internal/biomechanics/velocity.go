package biomechanics

import (
	"math"

	"github.com/kdimtricp/swingcore/internal/geometry"
	"github.com/kdimtricp/swingcore/internal/pose"
)

// VelocityScale rescales a raw landmark speed into a bounded display range.
type VelocityScale struct {
	K     float64 `yaml:"k" json:"k"`
	Lower float64 `yaml:"lower" json:"lower"`
	Upper float64 `yaml:"upper" json:"upper"`
}

var DefaultVelocityScale = VelocityScale{K: 50, Lower: 0, Upper: 100}

// LiveBalanceProxy estimates the speed of landmark between previous and
// current, in normalized units per second, rescaled and clamped by scale.
// It is undefined when the landmark is not visible in both frames or when
// the frames are not in increasing time order.
func LiveBalanceProxy(current, previous pose.Frame, topo pose.Topology, landmark pose.Landmark, threshold float64, scale VelocityScale) MetricValue {
	if !current.Visible(topo, threshold, landmark) || !previous.Visible(topo, threshold, landmark) {
		return Undefined()
	}

	dt := current.Timestamp - previous.Timestamp
	if !(dt > 0) {
		return Undefined()
	}

	cur, _ := current.Landmark(topo, landmark)
	prev, _ := previous.Landmark(topo, landmark)
	scaled := geometry.Distance(cur, prev) / dt * scale.K
	if math.IsNaN(scaled) {
		return Undefined()
	}

	lower, upper := scale.Lower, scale.Upper
	if lower > upper {
		lower, upper = upper, lower
	}
	return Defined(math.Max(lower, math.Min(upper, scaled)))
}
