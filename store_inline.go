//go:build xgxtrace_small

// store_inline.go — small-trace frame storage: inline array with spill.
//
// Design:
//   • Selected by the xgxtrace_small build tag; method set and semantics
//     are identical to store_heap.go, only the cost curve differs.
//   • The first inlineFrames frames live in a fixed array inside the
//     Trace's allocation; deeper traces spill to a heap slice. Short traces
//     (the common case for request-path errors) touch the allocator once.
//   • The two regions form one logical sequence: inline first, spill after.
package xgxtrace

// inlineFrames is the number of frames stored without a spill allocation.
const inlineFrames = 4

// frameStore holds a trace's frames, oldest first.
type frameStore struct {
	inline [inlineFrames]Frame
	n      int // frames occupied in inline
	spill  []Frame
}

// len returns the number of stored frames.
func (s *frameStore) len() int { return s.n + len(s.spill) }

// at returns a pointer to the i-th frame (oldest = 0). Callers must not
// retain the pointer across pushes.
func (s *frameStore) at(i int) *Frame {
	if i < s.n {
		return &s.inline[i]
	}
	return &s.spill[i-s.n]
}

// last returns the newest frame, or nil when empty.
func (s *frameStore) last() *Frame {
	if len(s.spill) > 0 {
		return &s.spill[len(s.spill)-1]
	}
	if s.n == 0 {
		return nil
	}
	return &s.inline[s.n-1]
}

// push appends f as the newest frame.
func (s *frameStore) push(f Frame) bool {
	if s.n < inlineFrames && len(s.spill) == 0 {
		s.inline[s.n] = f
		s.n++
		return true
	}
	s.spill = append(s.spill, f)
	return true
}

// popLast removes and returns the newest frame.
func (s *frameStore) popLast() (Frame, bool) {
	if m := len(s.spill); m > 0 {
		f := s.spill[m-1]
		s.spill[m-1] = Frame{}
		s.spill = s.spill[:m-1]
		return f, true
	}
	if s.n == 0 {
		return Frame{}, false
	}
	s.n--
	f := s.inline[s.n]
	s.inline[s.n] = Frame{}
	return f, true
}

// popFirst removes and returns the oldest frame.
func (s *frameStore) popFirst() (Frame, bool) {
	if s.n == 0 && len(s.spill) == 0 {
		return Frame{}, false
	}
	if s.n == 0 {
		// Spill only: behave like the heap backend.
		f := s.spill[0]
		copy(s.spill, s.spill[1:])
		s.spill[len(s.spill)-1] = Frame{}
		s.spill = s.spill[:len(s.spill)-1]
		return f, true
	}
	f := s.inline[0]
	copy(s.inline[:s.n], s.inline[1:s.n])
	s.n--
	// Refill the freed inline slot from the spill region, if any.
	if len(s.spill) > 0 {
		s.inline[s.n] = s.spill[0]
		s.n++
		copy(s.spill, s.spill[1:])
		s.spill[len(s.spill)-1] = Frame{}
		s.spill = s.spill[:len(s.spill)-1]
	} else {
		s.inline[s.n] = Frame{}
	}
	return f, true
}

// pushFirst inserts f as the oldest frame.
func (s *frameStore) pushFirst(f Frame) bool {
	if s.n == inlineFrames || len(s.spill) > 0 {
		// Inline region full: its newest frame moves to the spill head.
		s.spill = append(s.spill, Frame{})
		copy(s.spill[1:], s.spill)
		s.spill[0] = s.inline[inlineFrames-1]
		copy(s.inline[1:], s.inline[:inlineFrames-1])
		s.inline[0] = f
		return true
	}
	copy(s.inline[1:s.n+1], s.inline[:s.n])
	s.inline[0] = f
	s.n++
	return true
}

// clone returns an independent copy; per-frame context lists are deep-copied.
func (s *frameStore) clone() frameStore {
	var out frameStore
	out.n = s.n
	for i := 0; i < s.n; i++ {
		out.inline[i] = s.inline[i].clone()
	}
	if len(s.spill) > 0 {
		out.spill = make([]Frame, len(s.spill))
		for i := range s.spill {
			out.spill[i] = s.spill[i].clone()
		}
	}
	return out
}
