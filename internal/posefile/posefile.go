// Package posefile reads and writes the JSON pose documents produced by the
// pose detector.
//
//	{
//	  "topology": "blazepose33",
//	  "video": {"width": 1920, "height": 1080},
//	  "frames": [{"t": 0.0, "keypoints": [[0.5, 0.2], ...], "confidence": [0.97, ...]}]
//	}
package posefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kdimtricp/swingcore/internal/overlay"
	"github.com/kdimtricp/swingcore/internal/pose"
)

var (
	ErrMissingTopology = errors.New("pose document does not name a topology")
	ErrBadKeypoint     = errors.New("keypoint must be an [x, y] pair")
)

type frameJSON struct {
	T          float64     `json:"t"`
	Keypoints  [][]float64 `json:"keypoints"`
	Confidence []float64   `json:"confidence"`
}

type documentJSON struct {
	Topology string        `json:"topology"`
	Video    *overlay.Size `json:"video,omitempty"`
	Frames   []frameJSON   `json:"frames"`
}

// Document is a decoded, validated pose document.
type Document struct {
	Sequence  *pose.Sequence
	VideoSize *overlay.Size
}

// Decode parses and validates a pose document. Malformed frames reject the
// whole document.
func Decode(r io.Reader) (*Document, error) {
	var doc documentJSON
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode pose document: %w", err)
	}

	if doc.Topology == "" {
		return nil, ErrMissingTopology
	}
	topo, err := pose.LookupTopology(doc.Topology)
	if err != nil {
		return nil, err
	}

	frames := make([]pose.Frame, len(doc.Frames))
	for i, f := range doc.Frames {
		kp := make([]pose.Point2D, len(f.Keypoints))
		for j, p := range f.Keypoints {
			if len(p) != 2 {
				return nil, fmt.Errorf("invalid pose sequence: frame %d keypoint %d has %d values: %w", i, j, len(p), ErrBadKeypoint)
			}
			kp[j] = pose.Point2D{X: p[0], Y: p[1]}
		}
		frames[i] = pose.Frame{Timestamp: f.T, Keypoints: kp, Confidence: f.Confidence}
	}

	seq, err := pose.NewSequence(topo, frames)
	if err != nil {
		return nil, fmt.Errorf("invalid pose sequence: %w", err)
	}

	return &Document{Sequence: seq, VideoSize: doc.Video}, nil
}

// Encode writes seq as a pose document.
func Encode(w io.Writer, seq *pose.Sequence, video *overlay.Size) error {
	doc := documentJSON{
		Topology: seq.Topology().Name,
		Video:    video,
		Frames:   make([]frameJSON, seq.Len()),
	}

	for i, f := range seq.Frames() {
		kp := make([][]float64, len(f.Keypoints))
		for j, p := range f.Keypoints {
			kp[j] = []float64{p.X, p.Y}
		}
		doc.Frames[i] = frameJSON{T: f.Timestamp, Keypoints: kp, Confidence: f.Confidence}
	}

	if err := json.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode pose document: %w", err)
	}
	return nil
}
