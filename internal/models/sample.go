package models

import "github.com/kdimtricp/swingcore/internal/biomechanics"

// MetricSample is one metric of one sampled playback time, kept for the
// scoring layer. Status is empty when the metric has no band table or is
// undefined.
type MetricSample struct {
	ID         string                   `json:"id"`
	VideoID    string                   `json:"video_id"`
	SampleTime float64                  `json:"sample_time"`
	FrameIndex int                      `json:"frame_index"`
	Metric     string                   `json:"metric"`
	Value      biomechanics.MetricValue `json:"value"`
	Status     string                   `json:"status,omitempty"`
}
