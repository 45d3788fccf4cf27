package overlay

import (
	"github.com/kdimtricp/swingcore/internal/geometry"
	"github.com/kdimtricp/swingcore/internal/pose"
)

// Bone connects two landmarks.
type Bone struct {
	From pose.Landmark
	To   pose.Landmark
}

var bones = []Bone{
	{pose.LeftShoulder, pose.RightShoulder},
	{pose.LeftShoulder, pose.LeftElbow},
	{pose.LeftElbow, pose.LeftWrist},
	{pose.RightShoulder, pose.RightElbow},
	{pose.RightElbow, pose.RightWrist},
	{pose.LeftShoulder, pose.LeftHip},
	{pose.RightShoulder, pose.RightHip},
	{pose.LeftHip, pose.RightHip},
	{pose.LeftHip, pose.LeftKnee},
	{pose.LeftKnee, pose.LeftAnkle},
	{pose.RightHip, pose.RightKnee},
	{pose.RightKnee, pose.RightAnkle},
}

// Bones lists the drawn skeleton connections.
func Bones() []Bone {
	return append([]Bone(nil), bones...)
}

type Joint struct {
	Landmark pose.Landmark    `json:"-"`
	Name     string           `json:"name"`
	Point    geometry.Point2D `json:"point"`
}

type Segment struct {
	From geometry.Point2D `json:"from"`
	To   geometry.Point2D `json:"to"`
}

// Joints maps every landmark visible at threshold into rect.
func Joints(frame pose.Frame, topo pose.Topology, rect Rect, threshold float64) []Joint {
	var out []Joint
	for _, l := range pose.Landmarks() {
		p, c := frame.Landmark(topo, l)
		if c < threshold {
			continue
		}
		out = append(out, Joint{Landmark: l, Name: l.String(), Point: MapPoint(p, rect)})
	}
	return out
}

// Skeleton maps every bone whose endpoints are both visible into rect.
func Skeleton(frame pose.Frame, topo pose.Topology, rect Rect, threshold float64) []Segment {
	var out []Segment
	for _, b := range bones {
		if !frame.Visible(topo, threshold, b.From, b.To) {
			continue
		}
		from, _ := frame.Landmark(topo, b.From)
		to, _ := frame.Landmark(topo, b.To)
		out = append(out, Segment{From: MapPoint(from, rect), To: MapPoint(to, rect)})
	}
	return out
}
