package geometry

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestAngleAtVertex(t *testing.T) {
	tests := []struct {
		name      string
		p1, v, p3 Point2D
		expected  float64
	}{
		{"right angle", Point2D{1, 0}, Point2D{0, 0}, Point2D{0, 1}, 90},
		{"straight", Point2D{-1, 0}, Point2D{0, 0}, Point2D{1, 0}, 180},
		{"folded", Point2D{1, 0}, Point2D{0, 0}, Point2D{2, 0}, 0},
		{"forty five", Point2D{1, 0}, Point2D{0, 0}, Point2D{1, 1}, 45},
		{"p1 on vertex", Point2D{0.3, 0.3}, Point2D{0.3, 0.3}, Point2D{1, 1}, 0},
		{"p3 on vertex", Point2D{0, 1}, Point2D{0.5, 0.5}, Point2D{0.5, 0.5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleAtVertex(tt.p1, tt.v, tt.p3)
			if !almostEqual(got, tt.expected) {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestAngleAtVertex_Bounds(t *testing.T) {
	// nearly collinear points push the cosine past ±1 without the clamp
	points := [][3]Point2D{
		{{0.1, 0.1}, {0.2, 0.2}, {0.30000000000000004, 0.30000000000000004}},
		{{1e-12, 0}, {0, 0}, {-1e12, 1e-300}},
		{{0.5, 0.1}, {0.5, 0.5}, {0.5, 0.9}},
		{{123.4, -5}, {0, 0}, {-77, 3.2}},
	}

	for _, p := range points {
		got := AngleAtVertex(p[0], p[1], p[2])
		if math.IsNaN(got) || got < 0 || got > 180 {
			t.Errorf("Angle out of range for %v: %f", p, got)
		}
	}
}

func TestDistanceAndMidpoint(t *testing.T) {
	if d := Distance(Point2D{0, 0}, Point2D{3, 4}); !almostEqual(d, 5) {
		t.Errorf("Expected distance 5, got %f", d)
	}

	m := Midpoint(Point2D{0.2, 0.4}, Point2D{0.6, 0.8})
	if !almostEqual(m.X, 0.4) || !almostEqual(m.Y, 0.6) {
		t.Errorf("Unexpected midpoint %+v", m)
	}
}

func TestNormalize(t *testing.T) {
	n, ok := Normalize(Point2D{3, 4})
	if !ok {
		t.Fatal("Expected non-zero vector to normalize")
	}
	if !almostEqual(n.X, 0.6) || !almostEqual(n.Y, 0.8) {
		t.Errorf("Unexpected unit vector %+v", n)
	}

	if _, ok := Normalize(Point2D{}); ok {
		t.Error("Expected zero vector to fail normalization")
	}
}

func TestAxisAndVerticalAngle(t *testing.T) {
	origin := Point2D{0.5, 0.5}

	if a := AxisAngle(origin, Point2D{0.6, 0.5}); !almostEqual(a, 0) {
		t.Errorf("Expected horizontal vector at 0, got %f", a)
	}
	if a := AxisAngle(origin, Point2D{0.4, 0.5}); !almostEqual(a, 180) {
		t.Errorf("Expected reversed horizontal vector at 180, got %f", a)
	}
	if a := AxisAngle(origin, Point2D{0.6, 0.4}); !almostEqual(a, 45) {
		t.Errorf("Expected 45, got %f", a)
	}

	// nose straight above the hips: dy is negative in image space
	if a := VerticalAngle(origin, Point2D{0.5, 0.1}); !almostEqual(a, 180) {
		t.Errorf("Expected upright spine at 180, got %f", a)
	}
	if a := VerticalAngle(origin, Point2D{0.5, 0.9}); !almostEqual(a, 0) {
		t.Errorf("Expected 0, got %f", a)
	}
}
