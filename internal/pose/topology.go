package pose

import (
	"fmt"
	"sort"
)

// Landmark names an anatomical point. Its position within a frame's keypoint
// slice is decided by a Topology, never by the Landmark value itself.
type Landmark int

const (
	Nose Landmark = iota
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
	landmarkCount
)

var landmarkNames = [landmarkCount]string{
	"nose",
	"left_shoulder", "right_shoulder",
	"left_elbow", "right_elbow",
	"left_wrist", "right_wrist",
	"left_hip", "right_hip",
	"left_knee", "right_knee",
	"left_ankle", "right_ankle",
}

func (l Landmark) String() string {
	if l < 0 || l >= landmarkCount {
		return fmt.Sprintf("landmark(%d)", int(l))
	}
	return landmarkNames[l]
}

// Landmarks returns every named landmark in declaration order.
func Landmarks() []Landmark {
	out := make([]Landmark, landmarkCount)
	for i := range out {
		out[i] = Landmark(i)
	}
	return out
}

// Topology maps landmarks to keypoint indices for one pose detector scheme.
// Every consumer resolves indices through a Topology so that the scheme is
// chosen in exactly one place.
type Topology struct {
	Name    string
	Size    int
	indices [landmarkCount]int
}

// Index returns the keypoint index of l.
func (t Topology) Index(l Landmark) int {
	return t.indices[l]
}

// Valid reports whether the topology was built by this package.
func (t Topology) Valid() bool {
	return t.Name != "" && t.Size > 0
}

// BlazePose33 is the 33-point full-body scheme (shoulders 11/12, hips 23/24).
var BlazePose33 = Topology{
	Name: "blazepose33",
	Size: 33,
	indices: [landmarkCount]int{
		Nose:          0,
		LeftShoulder:  11,
		RightShoulder: 12,
		LeftElbow:     13,
		RightElbow:    14,
		LeftWrist:     15,
		RightWrist:    16,
		LeftHip:       23,
		RightHip:      24,
		LeftKnee:      25,
		RightKnee:     26,
		LeftAnkle:     27,
		RightAnkle:    28,
	},
}

// Compact13 is the reduced scheme (shoulders 1/2, hips 7/8) used by the
// lightweight detector output.
var Compact13 = Topology{
	Name: "compact13",
	Size: 13,
	indices: [landmarkCount]int{
		Nose:          0,
		LeftShoulder:  1,
		RightShoulder: 2,
		LeftElbow:     3,
		RightElbow:    4,
		LeftWrist:     5,
		RightWrist:    6,
		LeftHip:       7,
		RightHip:      8,
		LeftKnee:      9,
		RightKnee:     10,
		LeftAnkle:     11,
		RightAnkle:    12,
	},
}

var topologies = map[string]Topology{
	BlazePose33.Name: BlazePose33,
	Compact13.Name:   Compact13,
}

// LookupTopology resolves a topology by name. There is no default scheme.
func LookupTopology(name string) (Topology, error) {
	t, ok := topologies[name]
	if !ok {
		return Topology{}, fmt.Errorf("%w: %q", ErrUnknownTopology, name)
	}
	return t, nil
}

// TopologyNames lists the registered topology names, sorted.
func TopologyNames() []string {
	names := make([]string, 0, len(topologies))
	for name := range topologies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
