// format.go — fmt.Formatter implementation for xgx-trace core.
//
// Behavior:
//
//   %s, %v   → concise string (Error(); the inner message only).
//   %q       → quoted concise string.
//   %+v      → verbose multi-line trace:
//                Error: <inner, formatted with %+v>
//                    <aux context cells, newest first>
//                    at file.go:123
//                       ╰─ <frame context cells, newest first>
//                ─── → name (repo) ───
//                    at other.go:45
//
// Rationale:
//   - Keep core free of styling policy; only fmt formatting. Colors and
//     clickable links live in render.go.
//   - Frames print oldest first, so the output reads top-down from the
//     error's origin to the current propagation point.
//   - Defer inner-error formatting to fmt with %+v so wrapped types that
//     carry their own verbose form keep it.
package xgxtrace

import (
	"fmt"
	"io"
)

// formatConcise writes the one-line message (delegates to Error()).
func formatConcise(w io.Writer, e error) {
	// ignore write errors in formatting paths
	_, _ = io.WriteString(w, e.Error())
}

// formatVerbose writes the header line followed by the trace body.
// inner is pre-rendered so callers control its verb.
func formatVerbose(w io.Writer, inner string, t *Trace) {
	_, _ = io.WriteString(w, "Error: ")
	_, _ = io.WriteString(w, inner)
	if t == nil {
		return
	}
	for _, c := range reversedAux(t) {
		_, _ = fmt.Fprintf(w, "\n       ╰─ %s", c.String())
	}
	for _, f := range t.Frames() {
		writeFrame(w, &f)
	}
}

// writeFrame renders one frame: an optional boundary rule, the location
// line, and the frame's cells newest first.
func writeFrame(w io.Writer, f *Frame) {
	for _, c := range f.Contexts() {
		if meta, ok := c.Module(); ok {
			writeBoundary(w, meta)
		}
	}
	if loc, ok := f.Location(); ok {
		_, _ = fmt.Fprintf(w, "\n    at %s", loc.String())
	} else {
		_, _ = io.WriteString(w, "\n    [...]")
	}
	cs := f.Contexts()
	for i := len(cs) - 1; i >= 0; i-- {
		if cs[i].IsModuleBoundary() {
			continue
		}
		_, _ = fmt.Fprintf(w, "\n       ╰─ %s", cs[i].String())
	}
}

// writeBoundary renders the module-transition rule above a frame.
func writeBoundary(w io.Writer, meta *ModuleMeta) {
	_, _ = fmt.Fprintf(w, "\n─── → %s", meta.Name)
	if meta.Repo != "" {
		_, _ = fmt.Fprintf(w, " (%s)", meta.Repo)
	}
	_, _ = io.WriteString(w, " ───")
}

// reversedAux returns the auxiliary cells newest first.
func reversedAux(t *Trace) []ContextRef {
	aux := t.AuxContexts()
	for i, j := 0, len(aux)-1; i < j; i, j = i+1, j-1 {
		aux[i], aux[j] = aux[j], aux[i]
	}
	return aux
}

// Format implements fmt.Formatter. See the file header for the verb table.
func (a *Annotated[E]) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			formatVerbose(s, fmt.Sprintf("%+v", a.Unwrap()), a.Trace())
			return
		}
		formatConcise(s, a)
	case 's':
		formatConcise(s, a)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", a.Error())
	default:
		formatConcise(s, a)
	}
}

var _ fmt.Formatter = (*Annotated[error])(nil)
