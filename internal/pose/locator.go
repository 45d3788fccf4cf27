package pose

import "sort"

// NearestIndex returns the index of the frame whose timestamp is closest to t.
// Exact ties resolve to the earlier frame. Times outside the sequence clamp to
// the first or last frame. It reports false only for an empty sequence.
//
// Timestamps never decrease, so a binary search over them is O(log n).
func (s *Sequence) NearestIndex(t float64) (int, bool) {
	n := len(s.timestamps)
	if n == 0 {
		return 0, false
	}

	i := sort.SearchFloat64s(s.timestamps, t)
	switch {
	case i == n:
		i = n - 1
	case i > 0 && t-s.timestamps[i-1] <= s.timestamps[i]-t:
		i--
	}

	// frames sharing a timestamp resolve to the first of them
	return sort.SearchFloat64s(s.timestamps, s.timestamps[i]), true
}

// Nearest returns the frame closest to t.
func (s *Sequence) Nearest(t float64) (Frame, bool) {
	i, ok := s.NearestIndex(t)
	if !ok {
		return Frame{}, false
	}
	return s.At(i), true
}

// Previous returns the frame just before index i.
func (s *Sequence) Previous(i int) (Frame, bool) {
	if i <= 0 || i > len(s.frames) {
		return Frame{}, false
	}
	return s.At(i - 1), true
}
