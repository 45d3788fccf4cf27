// Package session ties one video's pose sequence to the metric, banding and
// overlay computations. Sessions are driven by the display loop through
// Update and Overlay and hold no scheduling state of their own.
package session

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/kdimtricp/swingcore/internal/banding"
	"github.com/kdimtricp/swingcore/internal/biomechanics"
	"github.com/kdimtricp/swingcore/internal/models"
	"github.com/kdimtricp/swingcore/internal/overlay"
	"github.com/kdimtricp/swingcore/internal/pose"
)

var (
	ErrNoSequence     = errors.New("session requires a pose sequence")
	ErrTooManySamples = errors.New("sample count exceeds limit")
)

// MaxSampleTicks bounds the number of Updates one Sample call produces.
const MaxSampleTicks = 100_000

type Config struct {
	VideoID             string
	Sequence            *pose.Sequence
	VideoSize           *overlay.Size
	VisibilityThreshold float64
	BalanceLandmark     pose.Landmark
	VelocityScale       biomechanics.VelocityScale
	Registry            *banding.Registry
}

// DefaultConfig returns a config with the standard threshold, the lead wrist
// as balance landmark, the default velocity scale and built-in bands.
func DefaultConfig(videoID string, seq *pose.Sequence) Config {
	return Config{
		VideoID:             videoID,
		Sequence:            seq,
		VisibilityThreshold: biomechanics.DefaultVisibilityThreshold,
		BalanceLandmark:     pose.LeftWrist,
		VelocityScale:       biomechanics.DefaultVelocityScale,
		Registry:            banding.DefaultRegistry(),
	}
}

type Session struct {
	ID      string
	VideoID string

	seq       *pose.Sequence
	threshold float64
	landmark  pose.Landmark
	scale     biomechanics.VelocityScale
	registry  *banding.Registry
	videoSize atomic.Pointer[overlay.Size]
}

func New(cfg Config) (*Session, error) {
	if cfg.Sequence == nil {
		return nil, ErrNoSequence
	}
	if cfg.VisibilityThreshold < 0 || cfg.VisibilityThreshold > 1 {
		return nil, fmt.Errorf("visibility threshold %f outside [0,1]", cfg.VisibilityThreshold)
	}
	if cfg.Registry == nil {
		cfg.Registry = banding.DefaultRegistry()
	}
	if cfg.VelocityScale == (biomechanics.VelocityScale{}) {
		cfg.VelocityScale = biomechanics.DefaultVelocityScale
	}

	s := &Session{
		ID:        uuid.New().String(),
		VideoID:   cfg.VideoID,
		seq:       cfg.Sequence,
		threshold: cfg.VisibilityThreshold,
		landmark:  cfg.BalanceLandmark,
		scale:     cfg.VelocityScale,
		registry:  cfg.Registry,
	}
	s.SetVideoSize(cfg.VideoSize)
	return s, nil
}

func (s *Session) Sequence() *pose.Sequence {
	return s.seq
}

func (s *Session) Registry() *banding.Registry {
	return s.registry
}

// SetVideoSize records the decoded video's intrinsic size once its metadata
// is known. A nil size restores full-viewport mapping.
func (s *Session) SetVideoSize(size *overlay.Size) {
	if size == nil {
		s.videoSize.Store(nil)
		return
	}
	v := *size
	s.videoSize.Store(&v)
}

func (s *Session) VideoSize() *overlay.Size {
	return s.videoSize.Load()
}

type StatusView struct {
	Status banding.Status `json:"status"`
	Color  string         `json:"color"`
}

// Update is everything the metrics panel needs for one playback time.
type Update struct {
	Time        float64                  `json:"time"`
	HasFrame    bool                     `json:"has_frame"`
	FrameIndex  int                      `json:"frame_index"`
	FrameTime   float64                  `json:"frame_time"`
	Snapshot    biomechanics.Snapshot    `json:"metrics"`
	LiveBalance biomechanics.MetricValue `json:"live_balance"`
	Statuses    map[string]StatusView    `json:"statuses"`
}

// Update resolves the frame nearest t and computes its metrics. With no
// frames it returns an Update with HasFrame false and every metric undefined.
func (s *Session) Update(t float64) Update {
	u := Update{Time: t, Statuses: map[string]StatusView{}}

	i, ok := s.seq.NearestIndex(t)
	if !ok {
		return u
	}

	cur := s.seq.At(i)
	u.HasFrame = true
	u.FrameIndex = i
	u.FrameTime = cur.Timestamp
	u.Snapshot = biomechanics.Extract(cur, s.seq.Topology(), s.threshold)

	if prev, ok := s.seq.Previous(i); ok {
		u.LiveBalance = biomechanics.LiveBalanceProxy(cur, prev, s.seq.Topology(), s.landmark, s.threshold, s.scale)
	}

	for name, status := range s.registry.Classify(u.Snapshot) {
		u.Statuses[name] = StatusView{Status: status, Color: status.Color()}
	}
	if status, ok := s.registry.ClassifyMetric(biomechanics.LiveBalance, u.LiveBalance); ok {
		u.Statuses[biomechanics.LiveBalance] = StatusView{Status: status, Color: status.Color()}
	}

	return u
}

type OverlayUpdate struct {
	Time     float64           `json:"time"`
	HasFrame bool              `json:"has_frame"`
	Rect     overlay.Rect      `json:"rect"`
	Joints   []overlay.Joint   `json:"joints"`
	Skeleton []overlay.Segment `json:"skeleton"`
}

// Overlay maps the frame nearest t into viewport space.
func (s *Session) Overlay(t float64, viewport overlay.Size) OverlayUpdate {
	o := OverlayUpdate{
		Time: t,
		Rect: overlay.VideoRect(viewport, s.VideoSize()),
	}

	f, ok := s.seq.Nearest(t)
	if !ok {
		return o
	}

	o.HasFrame = true
	o.Joints = overlay.Joints(f, s.seq.Topology(), o.Rect, s.threshold)
	o.Skeleton = overlay.Skeleton(f, s.seq.Topology(), o.Rect, s.threshold)
	return o
}

// Sample evaluates Update at a fixed rate across the sequence, as the display
// loop would during playback.
func (s *Session) Sample(hz float64) ([]Update, error) {
	if !(hz > 0) {
		return nil, fmt.Errorf("invalid sample rate %f", hz)
	}
	if s.seq.Len() == 0 {
		return nil, nil
	}

	span := s.seq.Duration() * hz
	if math.IsNaN(span) || span >= MaxSampleTicks {
		return nil, fmt.Errorf("%.0f ticks at %g Hz: %w", span, hz, ErrTooManySamples)
	}

	start := s.seq.At(0).Timestamp
	ticks := int(span) + 1

	updates := make([]Update, 0, ticks)
	for i := 0; i < ticks; i++ {
		updates = append(updates, s.Update(start+float64(i)/hz))
	}
	return updates, nil
}

// Samples flattens u into one persisted row per metric. Updates without a
// frame produce no rows.
func (u Update) Samples(videoID string) []models.MetricSample {
	if !u.HasFrame {
		return nil
	}

	metrics := append(u.Snapshot.Metrics(), biomechanics.NamedMetric{Name: biomechanics.LiveBalance, Value: u.LiveBalance})

	samples := make([]models.MetricSample, 0, len(metrics))
	for _, m := range metrics {
		s := models.MetricSample{
			VideoID:    videoID,
			SampleTime: u.Time,
			FrameIndex: u.FrameIndex,
			Metric:     m.Name,
			Value:      m.Value,
		}
		if view, ok := u.Statuses[m.Name]; ok {
			s.Status = view.Status.String()
		}
		samples = append(samples, s)
	}
	return samples
}
