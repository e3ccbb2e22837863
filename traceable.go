// traceable.go — embedding a trace inside an error type.
//
// Design:
//   • Traceable is the capability an error type implements to carry its
//     own trace instead of riding inside an Annotated wrapper. Domain
//     error structs embed TraceHolder and get the implementation for free.
//   • The package-level Extend/Attach helpers mirror the wrapper's At and
//     With* methods; storage and ordering semantics are identical, so a
//     trace moved between the two carriers reads the same.
//   • IntoEmbedded / FromEmbedded move a trace between carriers without
//     copying frames.
package xgxtrace

// Traceable is implemented by error types that carry their own trace.
type Traceable interface {
	// Trace returns the carried trace, or nil when none was recorded.
	Trace() *Trace
	// TraceMut returns the carried trace, allocating it on first use.
	TraceMut() *Trace
	// TakeTrace removes and returns the carried trace.
	TakeTrace() *Trace
	// PutTrace replaces the carried trace.
	PutTrace(*Trace)
}

// TraceHolder is an embeddable Traceable implementation with lazy
// allocation. Embed by value in the error struct:
//
//	type ParseError struct {
//		xgxtrace.TraceHolder
//		Path string
//	}
//
// Methods have pointer receivers, so the embedding error must be used as a
// pointer.
type TraceHolder struct {
	trace *Trace
}

// Trace returns the carried trace, or nil when none was recorded.
func (h *TraceHolder) Trace() *Trace { return h.trace }

// TraceMut returns the carried trace, allocating it on first use.
func (h *TraceHolder) TraceMut() *Trace {
	if h.trace == nil {
		h.trace = NewTrace()
	}
	return h.trace
}

// TakeTrace removes and returns the carried trace.
func (h *TraceHolder) TakeTrace() *Trace {
	t := h.trace
	h.trace = nil
	return t
}

// PutTrace replaces the carried trace.
func (h *TraceHolder) PutTrace(t *Trace) { h.trace = t }

var _ Traceable = (*TraceHolder)(nil)

// ---- package-level helpers ----

// ExtendEmbedded records the caller's location as a new frame on err's
// trace. A nil err is a no-op.
func ExtendEmbedded(err Traceable) {
	if err == nil {
		return
	}
	err.TraceMut().PushFrame(caller(1))
}

// AttachEmbedded attaches c to the newest frame of err's trace, or to its
// auxiliary list when no frames exist. A nil err is a no-op.
func AttachEmbedded(err Traceable, c Context) {
	if err == nil {
		return
	}
	err.TraceMut().AttachContext(c)
}

// AttachEmbeddedFunc attaches the text produced by f. f never runs when
// err is nil.
func AttachEmbeddedFunc(err Traceable, f func() string) {
	if err == nil {
		return
	}
	err.TraceMut().AttachContext(TextContext(f()))
}

// ---- carrier transfer ----

// traceableError constrains transfer targets to error types that carry
// their own trace.
type traceableError interface {
	error
	Traceable
}

// IntoEmbedded moves the wrapper's trace into its inner error and returns
// the inner error. A nil wrapper yields the zero value of E.
func IntoEmbedded[E traceableError](a *Annotated[E]) E {
	if a == nil {
		var zero E
		return zero
	}
	inner := a.inner
	if t := a.TakeTrace(); t != nil {
		inner.PutTrace(t)
	}
	return inner
}

// FromEmbedded moves err's carried trace into a fresh wrapper around err.
// A nil err yields a nil wrapper.
func FromEmbedded[E traceableError](err E) *Annotated[E] {
	if isNilError(err) {
		return nil
	}
	return &Annotated[E]{inner: err, trace: err.TakeTrace()}
}
