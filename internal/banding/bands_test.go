package banding

import (
	"math"
	"strings"
	"testing"

	"github.com/kdimtricp/swingcore/internal/biomechanics"
)

func TestClassify_Threshold(t *testing.T) {
	// declared out of order on purpose
	bands, err := NewBands(ModeThreshold, NeedsWork,
		Band{Upper: 6, Status: Fair},
		Band{Upper: 2, Status: Excellent},
		Band{Upper: 4, Status: Good},
	)
	if err != nil {
		t.Fatalf("Failed to build bands: %v", err)
	}

	tests := []struct {
		value    float64
		expected Status
	}{
		{0, Excellent},
		{1.9, Excellent},
		{2, Excellent},
		{-1.5, Excellent},
		{3, Good},
		{-3.9, Good},
		{5.5, Fair},
		{6.01, NeedsWork},
		{-100, NeedsWork},
		{math.Inf(1), NeedsWork},
		{math.Inf(-1), NeedsWork},
		{math.NaN(), NeedsWork},
		{math.MaxFloat64, NeedsWork},
	}

	for _, tt := range tests {
		if got := Classify(tt.value, bands); got != tt.expected {
			t.Errorf("Classify(%f): expected %s, got %s", tt.value, tt.expected, got)
		}
	}
}

func TestClassify_Range(t *testing.T) {
	bands, err := NewBands(ModeRange, 0,
		Band{Lower: 140, Upper: 175, Status: Good},
		Band{Lower: 150, Upper: 170, Status: Excellent},
	)
	if err != nil {
		t.Fatalf("Failed to build bands: %v", err)
	}
	if bands.Default != NeedsWork {
		t.Errorf("Expected default to fall back to needs_work, got %s", bands.Default)
	}

	tests := []struct {
		value    float64
		expected Status
	}{
		{160, Excellent},
		{150, Excellent},
		{145, Good},
		{174, Good},
		{-160, NeedsWork},
		{100, NeedsWork},
		{math.NaN(), NeedsWork},
		{math.Inf(1), NeedsWork},
	}

	for _, tt := range tests {
		if got := Classify(tt.value, bands); got != tt.expected {
			t.Errorf("Classify(%f): expected %s, got %s", tt.value, tt.expected, got)
		}
	}
}

func TestClassify_EmptyBandsIsTotal(t *testing.T) {
	if got := Classify(1, Bands{}); got != NeedsWork {
		t.Errorf("Expected needs_work from empty table, got %s", got)
	}
}

func TestNewBands_Invalid(t *testing.T) {
	if _, err := NewBands("zigzag", NeedsWork); err == nil {
		t.Error("Expected error for unknown mode")
	}
	if _, err := NewBands(ModeRange, NeedsWork, Band{Lower: 5, Upper: 1, Status: Good}); err == nil {
		t.Error("Expected error for inverted range")
	}
	if _, err := NewBands(ModeThreshold, NeedsWork, Band{Upper: 1}); err == nil {
		t.Error("Expected error for missing status")
	}
}

func TestStatus_TextAndColor(t *testing.T) {
	for _, s := range []Status{Excellent, Good, Fair, NeedsWork} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d) failed: %v", s, err)
		}
		var back Status
		if err := back.UnmarshalText(text); err != nil || back != s {
			t.Errorf("Round trip of %s gave %s (err=%v)", s, back, err)
		}
		if !strings.HasPrefix(s.Color(), "#") {
			t.Errorf("Unexpected color %q for %s", s.Color(), s)
		}
	}

	var s Status
	if err := s.UnmarshalText([]byte("perfect")); err == nil {
		t.Error("Expected error for unknown status name")
	}
}

func TestRegistry_Defaults(t *testing.T) {
	r := DefaultRegistry()

	status, ok := r.ClassifyMetric(SwingPath, biomechanics.Defined(3.5))
	if !ok || status != Good {
		t.Errorf("Expected swing path 3.5 to be good, got %s (ok=%v)", status, ok)
	}

	if _, ok := r.ClassifyMetric(SwingPath, biomechanics.Undefined()); ok {
		t.Error("Undefined metric must not be classified")
	}
	if _, ok := r.ClassifyMetric("tempo", biomechanics.Defined(3)); ok {
		t.Error("Metric without a table must not be classified")
	}

	snap := biomechanics.Snapshot{
		LeftKnee:  biomechanics.Defined(160),
		RightKnee: biomechanics.Undefined(),
	}
	statuses := r.Classify(snap)
	if statuses[biomechanics.LeftKnee] != Excellent {
		t.Errorf("Expected left knee excellent, got %s", statuses[biomechanics.LeftKnee])
	}
	if _, ok := statuses[biomechanics.RightKnee]; ok {
		t.Error("Undefined right knee should have no status")
	}
}

func TestLoadRegistry(t *testing.T) {
	doc := `
metrics:
  swing_path:
    mode: threshold
    default: fair
    bands:
      - upper: 1
        status: excellent
  tempo:
    mode: range
    bands:
      - lower: 2.8
        upper: 3.2
        status: excellent
`
	r, err := LoadRegistry(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if s, _ := r.ClassifyMetric(SwingPath, biomechanics.Defined(3)); s != Fair {
		t.Errorf("Expected overridden default fair, got %s", s)
	}
	if s, _ := r.ClassifyMetric("tempo", biomechanics.Defined(3)); s != Excellent {
		t.Errorf("Expected tempo excellent, got %s", s)
	}
	if _, ok := r.Get(biomechanics.LeftKnee); !ok {
		t.Error("Expected built-in tables to survive the overlay")
	}

	if _, err := LoadRegistry(strings.NewReader("metrics:\n  x:\n    bands:\n      - upper: 1\n        status: stellar\n")); err == nil {
		t.Error("Expected error for unknown status name")
	}

	empty, err := LoadRegistry(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Empty band file should load defaults: %v", err)
	}
	if len(empty.Names()) != len(DefaultRegistry().Names()) {
		t.Error("Empty band file should yield the default tables")
	}
}
