package pose_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/kdimtricp/swingcore/internal/pose"
	"github.com/kdimtricp/swingcore/internal/pose/posetest"
)

func TestNearestIndex(t *testing.T) {
	seq, err := posetest.Sequence(pose.Compact13, 0.0, 1.0, 2.0)
	if err != nil {
		t.Fatalf("Failed to build sequence: %v", err)
	}

	tests := []struct {
		name     string
		query    float64
		expected int
	}{
		{"tie resolves to earlier", 0.5, 0},
		{"second tie resolves to earlier", 1.5, 1},
		{"exact hit", 1.0, 1},
		{"closer to later", 0.51, 1},
		{"before range clamps", -10, 0},
		{"after range clamps", 42, 2},
		{"negative infinity", math.Inf(-1), 0},
		{"positive infinity", math.Inf(1), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := seq.NearestIndex(tt.query)
			if !ok {
				t.Fatal("Expected a frame")
			}
			if got != tt.expected {
				t.Errorf("Expected index %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestNearestIndex_MatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	timestamps := make([]float64, 300)
	ts := 0.0
	for i := range timestamps {
		ts += 0.01 + rng.Float64()*0.05
		timestamps[i] = ts
	}

	seq, err := posetest.Sequence(pose.Compact13, timestamps...)
	if err != nil {
		t.Fatalf("Failed to build sequence: %v", err)
	}

	for i := 0; i < 2000; i++ {
		q := rng.Float64()*(ts+2) - 1

		want := 0
		for j := range timestamps {
			if math.Abs(timestamps[j]-q) < math.Abs(timestamps[want]-q) {
				want = j
			}
		}

		got, _ := seq.NearestIndex(q)
		if got != want {
			t.Fatalf("Query %f: expected index %d, got %d", q, want, got)
		}
	}
}

func TestNearestAndPrevious(t *testing.T) {
	seq, err := posetest.Sequence(pose.Compact13, 0.0, 0.1, 0.2)
	if err != nil {
		t.Fatalf("Failed to build sequence: %v", err)
	}

	f, ok := seq.Nearest(0.19)
	if !ok || f.Timestamp != 0.2 {
		t.Errorf("Expected frame at 0.2, got %+v (ok=%v)", f.Timestamp, ok)
	}

	if _, ok := seq.Previous(0); ok {
		t.Error("First frame has no predecessor")
	}

	prev, ok := seq.Previous(2)
	if !ok || prev.Timestamp != 0.1 {
		t.Errorf("Expected previous frame at 0.1, got %f (ok=%v)", prev.Timestamp, ok)
	}
}

func TestNearestIndex_DuplicateTimestamps(t *testing.T) {
	seq, err := posetest.Sequence(pose.Compact13, 0.0, 1.0, 1.0, 1.0, 2.0)
	if err != nil {
		t.Fatalf("Duplicate timestamps should be accepted: %v", err)
	}

	for _, q := range []float64{0.9, 1.0, 1.2, 1.5} {
		if got, _ := seq.NearestIndex(q); got != 1 {
			t.Errorf("Query %f: expected first duplicate at index 1, got %d", q, got)
		}
	}
	if got, _ := seq.NearestIndex(1.6); got != 4 {
		t.Errorf("Expected index 4, got %d", got)
	}
}
