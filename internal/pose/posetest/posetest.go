// Package posetest builds pose frames for tests.
package posetest

import "github.com/kdimtricp/swingcore/internal/pose"

// Standing is a plausible address position in normalized coordinates.
var Standing = map[pose.Landmark]pose.Point2D{
	pose.Nose:          {X: 0.50, Y: 0.20},
	pose.LeftShoulder:  {X: 0.40, Y: 0.30},
	pose.RightShoulder: {X: 0.60, Y: 0.30},
	pose.LeftElbow:     {X: 0.40, Y: 0.45},
	pose.RightElbow:    {X: 0.60, Y: 0.45},
	pose.LeftWrist:     {X: 0.40, Y: 0.60},
	pose.RightWrist:    {X: 0.60, Y: 0.60},
	pose.LeftHip:       {X: 0.45, Y: 0.55},
	pose.RightHip:      {X: 0.55, Y: 0.55},
	pose.LeftKnee:      {X: 0.45, Y: 0.70},
	pose.RightKnee:     {X: 0.55, Y: 0.70},
	pose.LeftAnkle:     {X: 0.40, Y: 0.90},
	pose.RightAnkle:    {X: 0.60, Y: 0.90},
}

// Frame returns a frame sized for topo with the given landmark positions and
// a uniform confidence. Unnamed keypoints sit at the origin with confidence 0.
func Frame(topo pose.Topology, t float64, points map[pose.Landmark]pose.Point2D, confidence float64) pose.Frame {
	f := pose.Frame{
		Timestamp:  t,
		Keypoints:  make([]pose.Point2D, topo.Size),
		Confidence: make([]float64, topo.Size),
	}
	for l, p := range points {
		f.Keypoints[topo.Index(l)] = p
		f.Confidence[topo.Index(l)] = confidence
	}
	return f
}

// SetConfidence overwrites the confidence of l in f.
func SetConfidence(f pose.Frame, topo pose.Topology, l pose.Landmark, c float64) {
	f.Confidence[topo.Index(l)] = c
}

// Move overwrites the position of l in f.
func Move(f pose.Frame, topo pose.Topology, l pose.Landmark, p pose.Point2D) {
	f.Keypoints[topo.Index(l)] = p
}

// Sequence builds a sequence of Standing frames at the given timestamps.
func Sequence(topo pose.Topology, timestamps ...float64) (*pose.Sequence, error) {
	frames := make([]pose.Frame, len(timestamps))
	for i, ts := range timestamps {
		frames[i] = Frame(topo, ts, Standing, 0.9)
	}
	return pose.NewSequence(topo, frames)
}
