// ext.go — constructors and the fluent propagation surface.
//
// Design:
//   • Constructors are nil-tolerant: wrapping a nil error yields a nil
//     wrapper, so `return Start(doWork())` is correct on both branches.
//   • Every At*/With* method is a nil-safe no-op returning nil. The nil
//     receiver IS the success path; chained calls cost one pointer compare
//     apiece and the lazy variants never invoke their closures.
//   • Methods mutate the receiver's trace in place and return the receiver.
//     A wrapper is exclusively owned by its propagation path, so in-place
//     recording is safe and allocation-free past the first frame.
//
// Skip accounting: each capturing method sits exactly one frame above the
// user call site and passes skip=1 to the helpers in location.go.
package xgxtrace

import "reflect"

// isNilError reports whether err is nil, including a typed nil pointer
// stored in the type parameter (any(err) == nil misses that case).
func isNilError(err any) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// ---- constructors ----

// Wrap wraps err without recording a location. Frames accrue as the value
// propagates through At calls. Wrapping a nil error returns nil.
func Wrap[E error](err E) *Annotated[E] {
	if isNilError(err) {
		return nil
	}
	return &Annotated[E]{inner: err}
}

// Start wraps err and records the caller's location as the origin frame.
// Use at the point where the error first arises. Starting from a nil error
// returns nil.
func Start[E error](err E) *Annotated[E] {
	if isNilError(err) {
		return nil
	}
	t := NewTrace()
	t.PushFrame(caller(1))
	return &Annotated[E]{inner: err, trace: t}
}

// StartAt wraps err with an explicit origin location and module metadata.
// meta may be nil. For generated code and tables; ordinary call sites use
// Start.
func StartAt[E error](err E, loc Location, meta *ModuleMeta) *Annotated[E] {
	if isNilError(err) {
		return nil
	}
	t := NewTrace()
	t.PushFrame(loc)
	if meta != nil {
		t.SetMeta(meta)
	}
	return &Annotated[E]{inner: err, trace: t}
}

// ---- frame recording ----

// ensure returns the wrapper's trace, allocating it on first use.
func (a *Annotated[E]) ensure() *Trace {
	if a.trace == nil {
		a.trace = NewTrace()
	}
	return a.trace
}

// At records the caller's location as a new frame.
func (a *Annotated[E]) At() *Annotated[E] {
	if a == nil {
		return nil
	}
	a.ensure().PushFrame(caller(1))
	return a
}

// AtNamed records the caller's location as a new frame carrying one text
// cell equal to name. Shorthand for At().WithText(name) that labels the
// frame it just created.
func (a *Annotated[E]) AtNamed(name string) *Annotated[E] {
	if a == nil {
		return nil
	}
	t := a.ensure()
	if t.PushFrame(caller(1)) {
		t.AttachContext(TextContext(name))
	}
	return a
}

// AtFunc records the caller's location as a new frame labeled with the
// enclosing function's fully-qualified name.
func (a *Annotated[E]) AtFunc() *Annotated[E] {
	if a == nil {
		return nil
	}
	t := a.ensure()
	if t.PushFrame(caller(1)) {
		if fn := callerFunction(1); fn != "" {
			t.AttachContext(TextContext(fn))
		}
	}
	return a
}

// AtSkipped records a "[...]" placeholder frame, marking that the error
// propagated before tracing started.
func (a *Annotated[E]) AtSkipped() *Annotated[E] {
	if a == nil {
		return nil
	}
	a.ensure().PushSkipped()
	return a
}

// ---- context recording ----

// WithText attaches a text cell to the newest frame.
func (a *Annotated[E]) WithText(msg string) *Annotated[E] {
	if a == nil {
		return nil
	}
	a.ensure().AttachContext(TextContext(msg))
	return a
}

// WithTextFunc attaches the text produced by f. f runs only on the failure
// path; prefer this over WithText(fmt.Sprintf(...)) when the message is
// built dynamically.
func (a *Annotated[E]) WithTextFunc(f func() string) *Annotated[E] {
	if a == nil {
		return nil
	}
	a.ensure().AttachContext(TextContext(f()))
	return a
}

// WithDisplay attaches the value produced by f as a %v-rendered cell.
// f runs only on the failure path.
func (a *Annotated[E]) WithDisplay(f func() any) *Annotated[E] {
	if a == nil {
		return nil
	}
	a.ensure().AttachContext(DisplayContext(f()))
	return a
}

// WithDebug attaches the value produced by f as a %#v-rendered cell.
// f runs only on the failure path.
func (a *Annotated[E]) WithDebug(f func() any) *Annotated[E] {
	if a == nil {
		return nil
	}
	a.ensure().AttachContext(DebugContext(f()))
	return a
}

// WithFunc attaches the enclosing function's fully-qualified name as a
// text cell to the newest frame.
func (a *Annotated[E]) WithFunc() *Annotated[E] {
	if a == nil {
		return nil
	}
	if fn := callerFunction(1); fn != "" {
		a.ensure().AttachContext(TextContext(fn))
	}
	return a
}

// WithModule attaches a module-boundary marker. Call when an error crosses
// into the current module from a dependency; renderers re-base source
// links at the marker.
func (a *Annotated[E]) WithModule(meta *ModuleMeta) *Annotated[E] {
	if a == nil {
		return nil
	}
	a.ensure().AttachContext(ModuleContext(meta))
	return a
}

// SetMeta records the trace's origin-module metadata.
func (a *Annotated[E]) SetMeta(meta *ModuleMeta) *Annotated[E] {
	if a == nil {
		return nil
	}
	a.ensure().SetMeta(meta)
	return a
}
