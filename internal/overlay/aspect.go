// Package overlay maps normalized pose coordinates onto a letterboxed video
// viewport. MapPoint is the only coordinate transform used for overlays.
package overlay

import "github.com/kdimtricp/swingcore/internal/geometry"

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s Size) positive() bool {
	return s.Width > 0 && s.Height > 0
}

// Rect is the area the video image occupies, in viewport coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// VideoRect fits a video of intrinsic size video into viewport, preserving
// its aspect ratio and centering it. Without usable video dimensions the
// whole viewport is returned.
func VideoRect(viewport Size, video *Size) Rect {
	full := Rect{Width: viewport.Width, Height: viewport.Height}
	if video == nil || !video.positive() || !viewport.positive() {
		return full
	}

	videoAspect := video.Width / video.Height
	viewAspect := viewport.Width / viewport.Height

	if viewAspect > videoAspect {
		w := viewport.Height * videoAspect
		return Rect{X: (viewport.Width - w) / 2, Y: 0, Width: w, Height: viewport.Height}
	}

	h := viewport.Width / videoAspect
	return Rect{X: 0, Y: (viewport.Height - h) / 2, Width: viewport.Width, Height: h}
}

// MapPoint converts a normalized point into rect's coordinate space.
func MapPoint(p geometry.Point2D, rect Rect) geometry.Point2D {
	return geometry.Point2D{
		X: rect.X + p.X*rect.Width,
		Y: rect.Y + p.Y*rect.Height,
	}
}
