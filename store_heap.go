//go:build !xgxtrace_small

// store_heap.go — default frame storage: a plain growable slice.
//
// Design:
//   • frameStore is the storage seam shared with store_inline.go; the two
//     files expose an identical method set and differ only in cost curve.
//   • Selected when the xgxtrace_small build tag is absent.
//   • push reports success so callers written against the fallible contract
//     work unchanged under either backend.
package xgxtrace

// frameStore holds a trace's frames, oldest first.
type frameStore struct {
	frames []Frame
}

// len returns the number of stored frames.
func (s *frameStore) len() int { return len(s.frames) }

// at returns a pointer to the i-th frame (oldest = 0). Callers must not
// retain the pointer across pushes.
func (s *frameStore) at(i int) *Frame { return &s.frames[i] }

// last returns the newest frame, or nil when empty.
func (s *frameStore) last() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return &s.frames[len(s.frames)-1]
}

// push appends f as the newest frame.
func (s *frameStore) push(f Frame) bool {
	s.frames = append(s.frames, f)
	return true
}

// popLast removes and returns the newest frame.
func (s *frameStore) popLast() (Frame, bool) {
	n := len(s.frames)
	if n == 0 {
		return Frame{}, false
	}
	f := s.frames[n-1]
	s.frames[n-1] = Frame{}
	s.frames = s.frames[:n-1]
	return f, true
}

// popFirst removes and returns the oldest frame.
func (s *frameStore) popFirst() (Frame, bool) {
	n := len(s.frames)
	if n == 0 {
		return Frame{}, false
	}
	f := s.frames[0]
	copy(s.frames, s.frames[1:])
	s.frames[n-1] = Frame{}
	s.frames = s.frames[:n-1]
	return f, true
}

// pushFirst inserts f as the oldest frame.
func (s *frameStore) pushFirst(f Frame) bool {
	s.frames = append(s.frames, Frame{})
	copy(s.frames[1:], s.frames)
	s.frames[0] = f
	return true
}

// clone returns an independent copy; per-frame context lists are deep-copied.
func (s *frameStore) clone() frameStore {
	if len(s.frames) == 0 {
		return frameStore{}
	}
	out := make([]Frame, len(s.frames))
	for i := range s.frames {
		out[i] = s.frames[i].clone()
	}
	return frameStore{frames: out}
}
