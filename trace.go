// trace.go — frame sequence, context routing, and frame surgery.
//
// Design:
//   • A Trace is exclusively owned by one wrapper (or one Traceable error);
//     methods mutate in place. Sharing happens only through Clone.
//   • Frames are stored oldest first. "Last" is therefore the newest frame,
//     the one closest to the current propagation point.
//   • Context cells attach to the newest frame. When no frames exist yet
//     (a Wrap-constructed value), cells go to the auxiliary list so they
//     are never lost; renderers show the auxiliary list before the frames.
//   • Accessors that return slices are copy-on-read; internal storage is
//     never aliased out.
//
// The storage backend behind frameStore is selected at build time: a plain
// slice by default, an inline-array-with-spill variant under the
// xgxtrace_small build tag. See store_heap.go / store_inline.go.
package xgxtrace

// ---- Frame ----

// Frame is one recorded step of a trace: a source location plus the context
// cells attached while the error sat at that step. A frame may instead be a
// skipped-frames placeholder, rendered as "[...]", marking that propagation
// happened before tracing started.
type Frame struct {
	loc      Location
	skipped  bool
	contexts []Context
}

// NewFrame builds a frame at loc with no contexts.
func NewFrame(loc Location) Frame {
	return Frame{loc: loc}
}

// SkippedFrame builds a "[...]" placeholder frame.
func SkippedFrame() Frame {
	return Frame{skipped: true}
}

// Location returns the frame's source location. ok is false for
// skipped-frames placeholders, which carry no location.
func (f *Frame) Location() (Location, bool) {
	if f.skipped {
		return Location{}, false
	}
	return f.loc, true
}

// IsSkipped reports whether the frame is a skipped-frames placeholder.
func (f *Frame) IsSkipped() bool { return f.skipped }

// Contexts returns the frame's cells oldest first, as read-only references.
func (f *Frame) Contexts() []ContextRef {
	if len(f.contexts) == 0 {
		return nil
	}
	out := make([]ContextRef, len(f.contexts))
	for i := range f.contexts {
		out[i] = ContextRef{c: &f.contexts[i]}
	}
	return out
}

// WithText returns a copy of the frame with a text cell appended.
// The With* builders serve frame surgery: pop a frame, rebuild, push back.
func (f Frame) WithText(msg string) Frame {
	f.contexts = cloneAppend(f.contexts, TextContext(msg))
	return f
}

// WithDisplay returns a copy of the frame with a %v-rendered cell appended.
func (f Frame) WithDisplay(v any) Frame {
	f.contexts = cloneAppend(f.contexts, DisplayContext(v))
	return f
}

// WithDebug returns a copy of the frame with a %#v-rendered cell appended.
func (f Frame) WithDebug(v any) Frame {
	f.contexts = cloneAppend(f.contexts, DebugContext(v))
	return f
}

// WithModule returns a copy of the frame with a module-boundary marker.
func (f Frame) WithModule(meta *ModuleMeta) Frame {
	f.contexts = cloneAppend(f.contexts, ModuleContext(meta))
	return f
}

// attach appends c in place. Internal: the in-place variant is only safe on
// the exclusively-owned newest frame.
func (f *Frame) attach(c Context) {
	f.contexts = append(f.contexts, c)
}

// clone returns an independent copy of the frame.
func (f *Frame) clone() Frame {
	out := *f
	if len(f.contexts) > 0 {
		out.contexts = make([]Context, len(f.contexts))
		copy(out.contexts, f.contexts)
	}
	return out
}

// cloneAppend returns a NEW slice with dst's contents followed by add.
// Always a fresh backing array, so published frames are never aliased.
func cloneAppend(dst []Context, add Context) []Context {
	out := make([]Context, len(dst)+1)
	copy(out, dst)
	out[len(dst)] = add
	return out
}

// ---- Trace ----

// Trace is an ordered sequence of frames (oldest first) plus optional
// origin-module metadata and an auxiliary context list for cells attached
// before any frame existed.
type Trace struct {
	frames frameStore
	meta   *ModuleMeta
	aux    []Context
}

// NewTrace returns an empty trace.
func NewTrace() *Trace {
	return &Trace{}
}

// CaptureTrace returns a trace whose first frame is the caller's location.
func CaptureTrace() *Trace {
	t := &Trace{}
	t.frames.push(NewFrame(caller(1)))
	return t
}

// ---- recording ----

// PushFrame records a new newest frame at loc. Reports whether the frame
// was stored; on false the trace is unchanged.
func (t *Trace) PushFrame(loc Location) bool {
	return t.frames.push(NewFrame(loc))
}

// PushSkipped records a "[...]" placeholder as the newest frame.
func (t *Trace) PushSkipped() bool {
	return t.frames.push(SkippedFrame())
}

// AttachContext attaches c to the newest frame, or to the auxiliary list
// when the trace has no frames. Reports whether the cell was stored.
func (t *Trace) AttachContext(c Context) bool {
	if f := t.frames.last(); f != nil {
		f.attach(c)
		return true
	}
	t.aux = append(t.aux, c)
	return true
}

// SetMeta records the trace's origin-module metadata. The last write wins.
func (t *Trace) SetMeta(meta *ModuleMeta) {
	t.meta = meta
}

// ---- accessors ----

// Meta returns the origin-module metadata, or nil when none was recorded.
func (t *Trace) Meta() *ModuleMeta {
	if t == nil {
		return nil
	}
	return t.meta
}

// FrameCount returns the number of recorded frames, placeholders included.
func (t *Trace) FrameCount() int {
	if t == nil {
		return 0
	}
	return t.frames.len()
}

// IsEmpty reports whether the trace has no frames.
func (t *Trace) IsEmpty() bool { return t.FrameCount() == 0 }

// Frames returns copies of the frames, oldest first.
func (t *Trace) Frames() []Frame {
	n := t.FrameCount()
	if n == 0 {
		return nil
	}
	out := make([]Frame, n)
	for i := 0; i < n; i++ {
		out[i] = t.frames.at(i).clone()
	}
	return out
}

// Locations returns the recorded source locations, oldest first.
// Skipped-frames placeholders are excluded.
func (t *Trace) Locations() []Location {
	n := t.FrameCount()
	if n == 0 {
		return nil
	}
	out := make([]Location, 0, n)
	for i := 0; i < n; i++ {
		if f := t.frames.at(i); !f.skipped {
			out = append(out, f.loc)
		}
	}
	return out
}

// FirstLocation returns the oldest recorded location, the one nearest the
// error's origin. ok is false when the trace holds no located frames.
func (t *Trace) FirstLocation() (Location, bool) {
	n := t.FrameCount()
	for i := 0; i < n; i++ {
		if f := t.frames.at(i); !f.skipped {
			return f.loc, true
		}
	}
	return Location{}, false
}

// LastLocation returns the newest recorded location, the current
// propagation point. ok is false when the trace holds no located frames.
func (t *Trace) LastLocation() (Location, bool) {
	for i := t.FrameCount() - 1; i >= 0; i-- {
		if f := t.frames.at(i); !f.skipped {
			return f.loc, true
		}
	}
	return Location{}, false
}

// Contexts returns all cells ordered for diagnosis: newest frame first,
// newest cell first within each frame, auxiliary cells last. The first
// element is therefore the most recently attached piece of context.
func (t *Trace) Contexts() []ContextRef {
	if t == nil {
		return nil
	}
	var out []ContextRef
	for i := t.frames.len() - 1; i >= 0; i-- {
		f := t.frames.at(i)
		for j := len(f.contexts) - 1; j >= 0; j-- {
			out = append(out, ContextRef{c: &f.contexts[j]})
		}
	}
	for j := len(t.aux) - 1; j >= 0; j-- {
		out = append(out, ContextRef{c: &t.aux[j]})
	}
	return out
}

// AuxContexts returns the cells attached before any frame existed, oldest
// first.
func (t *Trace) AuxContexts() []ContextRef {
	if t == nil || len(t.aux) == 0 {
		return nil
	}
	out := make([]ContextRef, len(t.aux))
	for i := range t.aux {
		out[i] = ContextRef{c: &t.aux[i]}
	}
	return out
}

// ---- frame surgery ----

// PopLastFrame removes and returns the newest frame.
func (t *Trace) PopLastFrame() (Frame, bool) {
	return t.frames.popLast()
}

// PushLastFrame appends f as the newest frame. Reports whether it was
// stored. Together with PopLastFrame this supports rebuilding the newest
// frame through the Frame.With* builders.
func (t *Trace) PushLastFrame(f Frame) bool {
	return t.frames.push(f)
}

// PopFirstFrame removes and returns the oldest frame.
func (t *Trace) PopFirstFrame() (Frame, bool) {
	return t.frames.popFirst()
}

// PushFirstFrame inserts f as the oldest frame, before the error's
// recorded origin.
func (t *Trace) PushFirstFrame(f Frame) bool {
	return t.frames.pushFirst(f)
}

// AppendTrace moves all of other's frames after t's frames, oldest first,
// and other's auxiliary cells onto t's newest frame. other is left empty.
// Use when a stored error resumes propagating through new code.
func (t *Trace) AppendTrace(other *Trace) {
	if other == nil {
		return
	}
	for {
		f, ok := other.frames.popFirst()
		if !ok {
			break
		}
		t.frames.push(f)
	}
	for _, c := range other.aux {
		t.AttachContext(c)
	}
	other.aux = nil
}

// PrependTrace moves all of other's frames before t's frames; other's
// auxiliary cells are prepended to t's auxiliary list. other is left empty.
func (t *Trace) PrependTrace(other *Trace) {
	if other == nil {
		return
	}
	for {
		f, ok := other.frames.popLast()
		if !ok {
			break
		}
		t.frames.pushFirst(f)
	}
	if len(other.aux) > 0 {
		t.aux = append(other.aux, t.aux...)
		other.aux = nil
	}
}

// ---- lifecycle ----

// Take returns the trace's contents as a new trace and leaves t empty.
// Metadata moves with the contents.
func (t *Trace) Take() *Trace {
	out := &Trace{frames: t.frames, meta: t.meta, aux: t.aux}
	*t = Trace{}
	return out
}

// Clone returns a deep copy: frames and context lists are independent.
// Display/Debug payload values are shared; they are immutable by contract.
func (t *Trace) Clone() *Trace {
	if t == nil {
		return nil
	}
	out := &Trace{frames: t.frames.clone(), meta: t.meta}
	if len(t.aux) > 0 {
		out.aux = make([]Context, len(t.aux))
		copy(out.aux, t.aux)
	}
	return out
}
