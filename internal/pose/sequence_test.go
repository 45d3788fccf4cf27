package pose_test

import (
	"errors"
	"math"
	"testing"

	"github.com/kdimtricp/swingcore/internal/pose"
	"github.com/kdimtricp/swingcore/internal/pose/posetest"
)

func TestNewSequence_Rejects(t *testing.T) {
	good := func(ts float64) pose.Frame {
		return posetest.Frame(pose.Compact13, ts, posetest.Standing, 0.9)
	}

	mismatch := good(1)
	mismatch.Confidence = mismatch.Confidence[:5]

	short := pose.Frame{
		Timestamp:  1,
		Keypoints:  make([]pose.Point2D, 4),
		Confidence: make([]float64, 4),
	}

	badConf := good(1)
	badConf.Confidence[3] = 1.2

	nanConf := good(1)
	nanConf.Confidence[0] = math.NaN()

	badPoint := good(1)
	badPoint.Keypoints[2].X = math.Inf(1)

	tests := []struct {
		name     string
		topo     pose.Topology
		frames   []pose.Frame
		expected error
	}{
		{"zero topology", pose.Topology{}, nil, pose.ErrUnknownTopology},
		{"length mismatch", pose.Compact13, []pose.Frame{good(0), mismatch}, pose.ErrLengthMismatch},
		{"too few keypoints", pose.Compact13, []pose.Frame{short}, pose.ErrTooFewKeypoints},
		{"confidence above one", pose.Compact13, []pose.Frame{badConf}, pose.ErrBadConfidence},
		{"confidence NaN", pose.Compact13, []pose.Frame{nanConf}, pose.ErrBadConfidence},
		{"infinite keypoint", pose.Compact13, []pose.Frame{badPoint}, pose.ErrInvalidKeypoint},
		{"decreasing timestamp", pose.Compact13, []pose.Frame{good(2), good(1)}, pose.ErrNonMonotonic},
		{"NaN timestamp", pose.Compact13, []pose.Frame{good(math.NaN())}, pose.ErrBadTimestamp},
		{"compact frames under blazepose", pose.BlazePose33, []pose.Frame{good(0)}, pose.ErrTooFewKeypoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pose.NewSequence(tt.topo, tt.frames)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestNewSequence_CopiesInput(t *testing.T) {
	f := posetest.Frame(pose.Compact13, 0, posetest.Standing, 0.9)
	seq, err := pose.NewSequence(pose.Compact13, []pose.Frame{f})
	if err != nil {
		t.Fatalf("Failed to build sequence: %v", err)
	}

	f.Keypoints[0].X = 99
	f.Confidence[0] = 0

	got := seq.At(0)
	if got.Keypoints[0].X == 99 || got.Confidence[0] == 0 {
		t.Error("Sequence shares storage with caller's frames")
	}

	got.Keypoints[0].X = 42
	if seq.At(0).Keypoints[0].X == 42 {
		t.Error("At returned a frame aliasing sequence storage")
	}
}

func TestSequence_Empty(t *testing.T) {
	seq, err := pose.NewSequence(pose.BlazePose33, nil)
	if err != nil {
		t.Fatalf("Empty sequence should be valid: %v", err)
	}
	if seq.Len() != 0 || seq.Duration() != 0 {
		t.Errorf("Unexpected empty sequence state: len=%d duration=%f", seq.Len(), seq.Duration())
	}
	if _, ok := seq.Nearest(1.5); ok {
		t.Error("Expected no frame from an empty sequence")
	}
}

func TestLookupTopology(t *testing.T) {
	topo, err := pose.LookupTopology("blazepose33")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if topo.Index(pose.LeftShoulder) != 11 || topo.Index(pose.LeftHip) != 23 {
		t.Errorf("Unexpected blazepose33 indices")
	}

	topo, err = pose.LookupTopology("compact13")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if topo.Index(pose.LeftShoulder) != 1 || topo.Index(pose.RightHip) != 8 {
		t.Errorf("Unexpected compact13 indices")
	}

	if _, err := pose.LookupTopology(""); !errors.Is(err, pose.ErrUnknownTopology) {
		t.Errorf("Expected ErrUnknownTopology for empty name, got %v", err)
	}

	if names := pose.TopologyNames(); len(names) != 2 || names[0] != "blazepose33" {
		t.Errorf("Unexpected topology names %v", names)
	}
}
