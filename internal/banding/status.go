// Package banding classifies continuous metrics into display tiers.
package banding

import "fmt"

type Status int

const (
	Excellent Status = iota + 1
	Good
	Fair
	NeedsWork
)

var statusNames = map[Status]string{
	Excellent: "excellent",
	Good:      "good",
	Fair:      "fair",
	NeedsWork: "needs_work",
}

var statusColors = map[Status]string{
	Excellent: "#34C759",
	Good:      "#007AFF",
	Fair:      "#FF9500",
	NeedsWork: "#FF3B30",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Color is the display color of s as a hex RGB string.
func (s Status) Color() string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return "#8E8E93"
}

func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}
