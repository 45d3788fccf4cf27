// Package pose holds the immutable pose sequence produced by the external
// pose detector and the nearest-frame lookup over it.
package pose

import (
	"errors"
	"fmt"
	"math"

	"github.com/kdimtricp/swingcore/internal/geometry"
)

type Point2D = geometry.Point2D

var (
	ErrUnknownTopology = errors.New("unknown landmark topology")
	ErrLengthMismatch  = errors.New("keypoint and confidence lengths differ")
	ErrTooFewKeypoints = errors.New("frame has fewer keypoints than the topology requires")
	ErrBadConfidence   = errors.New("confidence outside [0,1]")
	ErrBadTimestamp    = errors.New("timestamp is not finite")
	ErrNonMonotonic    = errors.New("timestamps decrease")
	ErrInvalidKeypoint = errors.New("keypoint coordinate is not finite")
)

// Frame is one timestamped sample of landmark positions and confidences.
type Frame struct {
	Timestamp  float64
	Keypoints  []Point2D
	Confidence []float64
}

// Landmark returns the position and confidence of l under topo.
func (f Frame) Landmark(topo Topology, l Landmark) (Point2D, float64) {
	i := topo.Index(l)
	if i < 0 || i >= len(f.Keypoints) || i >= len(f.Confidence) {
		return Point2D{}, 0
	}
	return f.Keypoints[i], f.Confidence[i]
}

// Visible reports whether every landmark in ls has confidence >= threshold.
func (f Frame) Visible(topo Topology, threshold float64, ls ...Landmark) bool {
	for _, l := range ls {
		if _, c := f.Landmark(topo, l); c < threshold {
			return false
		}
	}
	return true
}

func (f Frame) clone() Frame {
	kp := make([]Point2D, len(f.Keypoints))
	copy(kp, f.Keypoints)
	conf := make([]float64, len(f.Confidence))
	copy(conf, f.Confidence)
	return Frame{Timestamp: f.Timestamp, Keypoints: kp, Confidence: conf}
}

// Sequence is an ordered, validated, read-only collection of frames for one
// video. It is safe for concurrent readers.
type Sequence struct {
	topology   Topology
	frames     []Frame
	timestamps []float64
}

// NewSequence validates frames and copies them into a new Sequence.
func NewSequence(topo Topology, frames []Frame) (*Sequence, error) {
	if !topo.Valid() {
		return nil, ErrUnknownTopology
	}

	s := &Sequence{
		topology:   topo,
		frames:     make([]Frame, len(frames)),
		timestamps: make([]float64, len(frames)),
	}

	for i, f := range frames {
		if err := validateFrame(topo, f); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		if i > 0 && f.Timestamp < frames[i-1].Timestamp {
			return nil, fmt.Errorf("frame %d (t=%f after t=%f): %w", i, f.Timestamp, frames[i-1].Timestamp, ErrNonMonotonic)
		}
		s.frames[i] = f.clone()
		s.timestamps[i] = f.Timestamp
	}

	return s, nil
}

func validateFrame(topo Topology, f Frame) error {
	if math.IsNaN(f.Timestamp) || math.IsInf(f.Timestamp, 0) {
		return ErrBadTimestamp
	}
	if len(f.Keypoints) != len(f.Confidence) {
		return fmt.Errorf("%w: %d keypoints, %d confidences", ErrLengthMismatch, len(f.Keypoints), len(f.Confidence))
	}
	if len(f.Keypoints) < topo.Size {
		return fmt.Errorf("%w: got %d, need %d", ErrTooFewKeypoints, len(f.Keypoints), topo.Size)
	}
	for i, p := range f.Keypoints {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return fmt.Errorf("%w: index %d", ErrInvalidKeypoint, i)
		}
	}
	for i, c := range f.Confidence {
		if !(c >= 0 && c <= 1) {
			return fmt.Errorf("%w: index %d = %f", ErrBadConfidence, i, c)
		}
	}
	return nil
}

func (s *Sequence) Topology() Topology {
	return s.topology
}

func (s *Sequence) Len() int {
	return len(s.frames)
}

// At returns a copy of frame i.
func (s *Sequence) At(i int) Frame {
	return s.frames[i].clone()
}

// Duration is the time between the first and last frame.
func (s *Sequence) Duration() float64 {
	if len(s.timestamps) == 0 {
		return 0
	}
	return s.timestamps[len(s.timestamps)-1] - s.timestamps[0]
}

// Frames returns copies of all frames in order.
func (s *Sequence) Frames() []Frame {
	out := make([]Frame, len(s.frames))
	for i, f := range s.frames {
		out[i] = f.clone()
	}
	return out
}
