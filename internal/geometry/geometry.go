// Package geometry holds the 2D vector math used by the pose metrics.
package geometry

import "math"

// Point2D is a 2D point. Pose coordinates are normalized to [0,1] with the
// origin at the top-left of the video frame and y increasing downward.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns the vector from b to a.
func Sub(a, b Point2D) Point2D {
	return Point2D{X: a.X - b.X, Y: a.Y - b.Y}
}

// Dot returns the dot product of a and b.
func Dot(a, b Point2D) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Length returns the magnitude of v.
func Length(v Point2D) float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point2D) float64 {
	return Length(Sub(a, b))
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point2D) Point2D {
	return Point2D{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Normalize scales v to unit length. It reports false for the zero vector.
func Normalize(v Point2D) (Point2D, bool) {
	l := Length(v)
	if l == 0 {
		return Point2D{}, false
	}
	return Point2D{X: v.X / l, Y: v.Y / l}, true
}

// AngleAtVertex returns the angle p1-vertex-p3 in degrees, in [0,180].
// A zero-length arm yields 0.
func AngleAtVertex(p1, vertex, p3 Point2D) float64 {
	v1 := Sub(p1, vertex)
	v2 := Sub(p3, vertex)

	m1 := Length(v1)
	m2 := Length(v2)
	if m1 == 0 || m2 == 0 {
		return 0
	}

	cos := Dot(v1, v2) / (m1 * m2)
	cos = math.Max(-1, math.Min(1, cos))
	return radToDeg(math.Acos(cos))
}

// AxisAngle returns |atan2(dy, dx)| of the vector from -> to, in degrees.
// It is referenced to the horizontal axis.
func AxisAngle(from, to Point2D) float64 {
	d := Sub(to, from)
	return math.Abs(radToDeg(math.Atan2(d.Y, d.X)))
}

// VerticalAngle returns |atan2(dx, dy)| of the vector from -> to, in degrees.
// It is referenced to the vertical axis.
func VerticalAngle(from, to Point2D) float64 {
	d := Sub(to, from)
	return math.Abs(radToDeg(math.Atan2(d.X, d.Y)))
}

func radToDeg(r float64) float64 {
	return r * 180 / math.Pi
}
