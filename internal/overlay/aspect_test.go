package overlay

import (
	"math"
	"testing"

	"github.com/kdimtricp/swingcore/internal/geometry"
	"github.com/kdimtricp/swingcore/internal/pose"
	"github.com/kdimtricp/swingcore/internal/pose/posetest"
)

func rectNear(a, b Rect) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.Width-b.Width) < eps && math.Abs(a.Height-b.Height) < eps
}

func TestVideoRect(t *testing.T) {
	hd := &Size{Width: 1920, Height: 1080}

	tests := []struct {
		name     string
		viewport Size
		video    *Size
		expected Rect
	}{
		{"no metadata", Size{400, 300}, nil, Rect{0, 0, 400, 300}},
		{"zero width video", Size{400, 300}, &Size{0, 1080}, Rect{0, 0, 400, 300}},
		{"negative height video", Size{400, 300}, &Size{1920, -1}, Rect{0, 0, 400, 300}},
		{"same aspect", Size{1600, 900}, hd, Rect{0, 0, 1600, 900}},
		{"portrait viewport", Size{900, 1600}, hd, Rect{0, (1600 - 506.25) / 2, 900, 506.25}},
		{"wide viewport", Size{2000, 900}, hd, Rect{(2000 - 1600) / 2, 0, 1600, 900}},
		{"zero viewport", Size{0, 0}, hd, Rect{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VideoRect(tt.viewport, tt.video)
			if !rectNear(got, tt.expected) {
				t.Errorf("Expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestVideoRect_PortraitCoverage(t *testing.T) {
	viewport := Size{Width: 9, Height: 16}
	rect := VideoRect(viewport, &Size{Width: 16, Height: 9})

	if rect.Width != viewport.Width {
		t.Errorf("Expected width %f, got %f", viewport.Width, rect.Width)
	}
	if math.Abs(rect.Y-(viewport.Height-rect.Height)/2) > 1e-12 {
		t.Errorf("Expected vertical centering, got y=%f height=%f", rect.Y, rect.Height)
	}
}

func TestMapPoint_CornersLandOnRect(t *testing.T) {
	viewports := []Size{{390, 844}, {844, 390}, {1024, 768}, {300, 300}}
	videos := []*Size{{1920, 1080}, {1080, 1920}, {640, 480}, nil}

	for _, vp := range viewports {
		for _, v := range videos {
			rect := VideoRect(vp, v)

			corners := []struct {
				in       geometry.Point2D
				expected geometry.Point2D
			}{
				{geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: rect.X, Y: rect.Y}},
				{geometry.Point2D{X: 1, Y: 0}, geometry.Point2D{X: rect.X + rect.Width, Y: rect.Y}},
				{geometry.Point2D{X: 0, Y: 1}, geometry.Point2D{X: rect.X, Y: rect.Y + rect.Height}},
				{geometry.Point2D{X: 1, Y: 1}, geometry.Point2D{X: rect.X + rect.Width, Y: rect.Y + rect.Height}},
			}

			for _, c := range corners {
				if got := MapPoint(c.in, rect); got != c.expected {
					t.Errorf("viewport %+v video %+v: corner %+v mapped to %+v, expected %+v", vp, v, c.in, got, c.expected)
				}
			}
		}
	}
}

func TestSkeleton(t *testing.T) {
	f := posetest.Frame(pose.Compact13, 0, posetest.Standing, 0.9)
	posetest.SetConfidence(f, pose.Compact13, pose.LeftKnee, 0.2)

	rect := Rect{X: 10, Y: 20, Width: 100, Height: 200}

	segments := Skeleton(f, pose.Compact13, rect, 0.8)
	if len(segments) != len(Bones())-2 {
		t.Errorf("Expected %d segments with hidden knee, got %d", len(Bones())-2, len(segments))
	}

	joints := Joints(f, pose.Compact13, rect, 0.8)
	if len(joints) != len(pose.Landmarks())-1 {
		t.Errorf("Expected %d joints, got %d", len(pose.Landmarks())-1, len(joints))
	}
	for _, j := range joints {
		if j.Landmark == pose.Nose {
			expected := geometry.Point2D{X: 10 + 0.5*100, Y: 20 + 0.2*200}
			if j.Point != expected {
				t.Errorf("Expected nose at %+v, got %+v", expected, j.Point)
			}
		}
	}
}
