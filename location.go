// location.go — caller-location capture for xgx-trace core.
//
// Design goals:
//   - Single-frame capture: a trace records only the locations the caller
//     explicitly marks; we never walk the machine stack.
//   - Accuracy: function-name capture goes through runtime.CallersFrames so
//     inlined calls resolve to the right symbol.
//   - Cheap by default: runtime.Caller resolves one frame; no allocation
//     beyond the returned value.
//
// Skip model: every exported entry point that captures a location sits
// exactly one frame above the user call site and passes skip=1 into the
// helpers here; the helpers add their own internal offsets.
package xgxtrace

import (
	"runtime"
	"strconv"
)

// Location identifies a single marked call site: file, line, and column.
//
// Captured locations always have Column == 0 — the Go runtime does not
// report columns — but the field is kept so explicitly constructed
// locations (tables, generated code) lose nothing.
type Location struct {
	File   string
	Line   int
	Column int
}

// Here captures the caller's source location.
//
// Use it when an API takes an explicit Location rather than capturing one
// itself, e.g. StartAt(err, xgxtrace.Here(), meta).
func Here() Location {
	return caller(1)
}

// IsZero reports whether the location carries no information
// (capture failed or the zero value was used).
func (l Location) IsZero() bool {
	return l.File == "" && l.Line == 0
}

// String renders "file:line", or "file:line:column" when a column is set.
func (l Location) String() string {
	s := l.File + ":" + strconv.Itoa(l.Line)
	if l.Column > 0 {
		s += ":" + strconv.Itoa(l.Column)
	}
	return s
}

// caller resolves the location 'skip' frames above the caller of caller.
// skip=0 is the immediate caller.
func caller(skip int) Location {
	// +1 to skip this helper itself.
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}
	}
	return Location{File: file, Line: line}
}

// callerFunction resolves the fully-qualified function name 'skip' frames
// above the caller of callerFunction. Returns "" if resolution fails.
//
// Uses runtime.Callers + CallersFrames rather than FuncForPC so inlined
// frames resolve correctly.
func callerFunction(skip int) string {
	var pc [1]uintptr
	// +2: one for runtime.Callers, one for this helper.
	n := runtime.Callers(skip+2, pc[:])
	if n == 0 {
		return ""
	}
	fr, _ := runtime.CallersFrames(pc[:n]).Next()
	return fr.Function
}
