// annotated.go — the Annotated wrapper: one error, one trace pointer.
//
// Design:
//   • Annotated[E] pairs an inner error with a heap-allocated trace. The
//     wrapper adds exactly one pointer of overhead over E, so a fallible
//     signature returning *Annotated[E] costs a word more than returning E.
//   • The nil *Annotated[E] is the success value. Every propagation method
//     is a nil-safe no-op returning nil, so call sites chain without
//     checking: `return doWork().At()` is correct on both branches, and no
//     trace work happens when nothing failed.
//   • Identity lives in the inner error alone. Equal ignores the trace;
//     code that keys maps on errors keys on Inner().
//   • Interop first: *Annotated[E] implements error and Unwrap, so
//     errors.Is and errors.As traverse into the wrapped error unchanged.
package xgxtrace

import "reflect"

// Annotated wraps an error of type E together with its propagation trace.
// Construct with Wrap, Start, StartAt, or FromParts; use as *Annotated[E].
type Annotated[E error] struct {
	inner E
	trace *Trace
}

// FromParts assembles a wrapper from an existing error and trace.
// trace may be nil; a trace is allocated on first use.
func FromParts[E error](err E, trace *Trace) *Annotated[E] {
	return &Annotated[E]{inner: err, trace: trace}
}

// ---- error interop ----

// Error returns the inner error's message. The trace never appears here;
// use %+v or Render for the full trace.
func (a *Annotated[E]) Error() string {
	if a == nil {
		return "<nil>"
	}
	return a.inner.Error()
}

// Unwrap exposes the inner error to errors.Is and errors.As.
func (a *Annotated[E]) Unwrap() error {
	if a == nil {
		return nil
	}
	return a.inner
}

// ---- accessors ----

// Inner returns the wrapped error. On a nil wrapper it returns the zero
// value of E.
func (a *Annotated[E]) Inner() E {
	if a == nil {
		var zero E
		return zero
	}
	return a.inner
}

// InnerPtr returns a pointer to the wrapped error for in-place inspection,
// or nil on a nil wrapper.
func (a *Annotated[E]) InnerPtr() *E {
	if a == nil {
		return nil
	}
	return &a.inner
}

// IntoInner returns the wrapped error, discarding the trace.
func (a *Annotated[E]) IntoInner() E {
	return a.Inner()
}

// Trace returns the wrapper's trace, or nil when none was recorded.
func (a *Annotated[E]) Trace() *Trace {
	if a == nil {
		return nil
	}
	return a.trace
}

// TakeTrace removes and returns the trace, leaving the wrapper traceless.
func (a *Annotated[E]) TakeTrace() *Trace {
	if a == nil {
		return nil
	}
	t := a.trace
	a.trace = nil
	return t
}

// SetTrace replaces the wrapper's trace.
func (a *Annotated[E]) SetTrace(t *Trace) {
	if a == nil {
		return
	}
	a.trace = t
}

// FrameCount returns the number of recorded frames.
func (a *Annotated[E]) FrameCount() int { return a.Trace().FrameCount() }

// IsEmpty reports whether no frames were recorded.
func (a *Annotated[E]) IsEmpty() bool { return a.FrameCount() == 0 }

// FirstLocation returns the location nearest the error's origin.
func (a *Annotated[E]) FirstLocation() (Location, bool) {
	return a.Trace().FirstLocation()
}

// LastLocation returns the current propagation point.
func (a *Annotated[E]) LastLocation() (Location, bool) {
	return a.Trace().LastLocation()
}

// Locations returns the recorded locations, oldest first.
func (a *Annotated[E]) Locations() []Location { return a.Trace().Locations() }

// Frames returns copies of the recorded frames, oldest first.
func (a *Annotated[E]) Frames() []Frame { return a.Trace().Frames() }

// Contexts returns all context cells, newest first. See Trace.Contexts for
// the exact ordering.
func (a *Annotated[E]) Contexts() []ContextRef { return a.Trace().Contexts() }

// ModuleInfo returns the origin-module metadata, or nil when none was set.
func (a *Annotated[E]) ModuleInfo() *ModuleMeta { return a.Trace().Meta() }

// ---- identity ----

// Equal reports whether a and other wrap equal inner errors. Traces are
// metadata and never participate: two wrappers with the same inner error
// and different traces are equal. Comparable inner types compare with ==;
// others fall back to reflect.DeepEqual.
func (a *Annotated[E]) Equal(other *Annotated[E]) bool {
	if a == nil || other == nil {
		return a == nil && other == nil
	}
	return innerEqual(a.inner, other.inner)
}

// innerEqual compares two errors by value, tolerating non-comparable
// dynamic types (comparing those with == would panic).
func innerEqual(x, y error) bool {
	if isComparable(x) && isComparable(y) {
		return x == y
	}
	return reflect.DeepEqual(x, y)
}

// isComparable reports whether v's dynamic type supports ==.
func isComparable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}

// ---- lifecycle ----

// Clone returns an independent wrapper: the trace is deep-copied, the
// inner error is copied by value. nil clones to nil.
func (a *Annotated[E]) Clone() *Annotated[E] {
	if a == nil {
		return nil
	}
	return &Annotated[E]{inner: a.inner, trace: a.trace.Clone()}
}

// MapInner converts the inner error with f, preserving the trace. The
// trace moves to the result; a is left traceless. nil maps to nil without
// invoking f. A package function because Go methods cannot introduce the
// target type parameter.
func MapInner[E, U error](a *Annotated[E], f func(E) U) *Annotated[U] {
	if a == nil {
		return nil
	}
	return &Annotated[U]{inner: f(a.inner), trace: a.TakeTrace()}
}

var _ error = (*Annotated[error])(nil)
