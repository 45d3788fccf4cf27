package biomechanics

import (
	"math"

	"github.com/kdimtricp/swingcore/internal/geometry"
	"github.com/kdimtricp/swingcore/internal/pose"
)

// Metric names, shared with the band registry and persisted snapshot rows.
const (
	HipRotation      = "hip_rotation"
	ShoulderRotation = "shoulder_rotation"
	XFactor          = "x_factor"
	SpineAngle       = "spine_angle"
	LeftElbow        = "left_elbow"
	RightElbow       = "right_elbow"
	LeftKnee         = "left_knee"
	RightKnee        = "right_knee"
	StanceWidth      = "stance_width"
	BalanceOffset    = "balance_offset"
	LiveBalance      = "live_balance"
)

// Snapshot holds every per-frame metric. Angles are unsigned degrees;
// distances are in normalized frame units.
type Snapshot struct {
	HipRotation      MetricValue `json:"hip_rotation"`
	ShoulderRotation MetricValue `json:"shoulder_rotation"`
	XFactor          MetricValue `json:"x_factor"`
	SpineAngle       MetricValue `json:"spine_angle"`
	LeftElbow        MetricValue `json:"left_elbow"`
	RightElbow       MetricValue `json:"right_elbow"`
	LeftKnee         MetricValue `json:"left_knee"`
	RightKnee        MetricValue `json:"right_knee"`
	StanceWidth      MetricValue `json:"stance_width"`
	BalanceOffset    MetricValue `json:"balance_offset"`
}

type NamedMetric struct {
	Name  string
	Value MetricValue
}

// Metrics lists the snapshot in a stable order.
func (s Snapshot) Metrics() []NamedMetric {
	return []NamedMetric{
		{HipRotation, s.HipRotation},
		{ShoulderRotation, s.ShoulderRotation},
		{XFactor, s.XFactor},
		{SpineAngle, s.SpineAngle},
		{LeftElbow, s.LeftElbow},
		{RightElbow, s.RightElbow},
		{LeftKnee, s.LeftKnee},
		{RightKnee, s.RightKnee},
		{StanceWidth, s.StanceWidth},
		{BalanceOffset, s.BalanceOffset},
	}
}

// gated evaluates fn only if every landmark in ls is visible.
type gated struct {
	frame     pose.Frame
	topo      pose.Topology
	threshold float64
}

func (g gated) metric(fn func(p func(pose.Landmark) geometry.Point2D) float64, ls ...pose.Landmark) MetricValue {
	if !g.frame.Visible(g.topo, g.threshold, ls...) {
		return Undefined()
	}
	v := fn(func(l pose.Landmark) geometry.Point2D {
		p, _ := g.frame.Landmark(g.topo, l)
		return p
	})
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Undefined()
	}
	return Defined(v)
}

// Extract computes the per-frame metrics. A metric is undefined when any
// landmark it reads has confidence below threshold.
func Extract(frame pose.Frame, topo pose.Topology, threshold float64) Snapshot {
	g := gated{frame: frame, topo: topo, threshold: threshold}

	var s Snapshot

	s.HipRotation = g.metric(func(p func(pose.Landmark) geometry.Point2D) float64 {
		return geometry.AxisAngle(p(pose.LeftHip), p(pose.RightHip))
	}, pose.LeftHip, pose.RightHip)

	s.ShoulderRotation = g.metric(func(p func(pose.Landmark) geometry.Point2D) float64 {
		return geometry.AxisAngle(p(pose.LeftShoulder), p(pose.RightShoulder))
	}, pose.LeftShoulder, pose.RightShoulder)

	if s.HipRotation.Defined && s.ShoulderRotation.Defined {
		s.XFactor = Defined(math.Abs(s.ShoulderRotation.Value - s.HipRotation.Value))
	}

	s.SpineAngle = g.metric(func(p func(pose.Landmark) geometry.Point2D) float64 {
		hips := geometry.Midpoint(p(pose.LeftHip), p(pose.RightHip))
		return geometry.VerticalAngle(hips, p(pose.Nose))
	}, pose.LeftHip, pose.RightHip, pose.Nose)

	s.LeftElbow = g.metric(func(p func(pose.Landmark) geometry.Point2D) float64 {
		return geometry.AngleAtVertex(p(pose.LeftShoulder), p(pose.LeftElbow), p(pose.LeftWrist))
	}, pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist)

	s.RightElbow = g.metric(func(p func(pose.Landmark) geometry.Point2D) float64 {
		return geometry.AngleAtVertex(p(pose.RightShoulder), p(pose.RightElbow), p(pose.RightWrist))
	}, pose.RightShoulder, pose.RightElbow, pose.RightWrist)

	s.LeftKnee = g.metric(func(p func(pose.Landmark) geometry.Point2D) float64 {
		return geometry.AngleAtVertex(p(pose.LeftHip), p(pose.LeftKnee), p(pose.LeftAnkle))
	}, pose.LeftHip, pose.LeftKnee, pose.LeftAnkle)

	s.RightKnee = g.metric(func(p func(pose.Landmark) geometry.Point2D) float64 {
		return geometry.AngleAtVertex(p(pose.RightHip), p(pose.RightKnee), p(pose.RightAnkle))
	}, pose.RightHip, pose.RightKnee, pose.RightAnkle)

	s.StanceWidth = g.metric(func(p func(pose.Landmark) geometry.Point2D) float64 {
		return geometry.Distance(p(pose.LeftAnkle), p(pose.RightAnkle))
	}, pose.LeftAnkle, pose.RightAnkle)

	s.BalanceOffset = g.metric(func(p func(pose.Landmark) geometry.Point2D) float64 {
		hips := geometry.Midpoint(p(pose.LeftHip), p(pose.RightHip))
		feet := geometry.Midpoint(p(pose.LeftAnkle), p(pose.RightAnkle))
		return geometry.Distance(hips, feet)
	}, pose.LeftHip, pose.RightHip, pose.LeftAnkle, pose.RightAnkle)

	return s
}
