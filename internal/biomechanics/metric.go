// Package biomechanics derives joint metrics from single pose frames and a
// motion proxy from adjacent frames. All metrics are confidence-gated.
package biomechanics

import (
	"encoding/json"
	"strconv"
)

// DefaultVisibilityThreshold is the minimum landmark confidence a metric needs.
const DefaultVisibilityThreshold = 0.8

// MetricValue is a metric that may be unavailable. Callers must check Defined
// before using Value; undefined metrics carry Value 0.
type MetricValue struct {
	Value   float64
	Defined bool
}

func Defined(v float64) MetricValue {
	return MetricValue{Value: v, Defined: true}
}

func Undefined() MetricValue {
	return MetricValue{}
}

func (m MetricValue) String() string {
	if !m.Defined {
		return "unavailable"
	}
	return strconv.FormatFloat(m.Value, 'f', 1, 64)
}

// MarshalJSON renders undefined metrics as null.
func (m MetricValue) MarshalJSON() ([]byte, error) {
	if !m.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *MetricValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Undefined()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Defined(v)
	return nil
}
