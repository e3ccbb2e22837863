// context.go — trace context cells for xgx-trace core.
//
// Design:
//   • Internal representation: a small tagged struct. The tag selects how
//     the payload renders (plain text, %v display form, %#v debug form, or
//     a module-boundary marker).
//   • Payload ownership: Display/Debug cells hold their value as `any`; the
//     dynamic type is retained, so callers can recover the original value
//     without a separate descriptor.
//   • Public view for callers: ContextRef, a read-only reference handed out
//     by the Contexts iteration APIs. Cells are never mutated once attached.
//
// Note: there is a single text kind. The property that matters on the hot
// path is whether a string is built at all when nothing failed, and that
// lives in the WithTextFunc-style entry points, not in the cell.
package xgxtrace

import "fmt"

// contextKind tags the payload of a Context cell.
type contextKind uint8

const (
	kindText contextKind = iota
	kindDisplay
	kindDebug
	kindModule
)

// Context is one annotation cell attached to a trace frame, or to the
// trace's auxiliary list when no frames exist yet.
type Context struct {
	kind contextKind
	text string
	val  any
	meta *ModuleMeta
}

// TextContext builds a plain text cell.
func TextContext(msg string) Context {
	return Context{kind: kindText, text: msg}
}

// DisplayContext builds a cell holding v, rendered with %v.
func DisplayContext(v any) Context {
	return Context{kind: kindDisplay, val: v}
}

// DebugContext builds a cell holding v, rendered with %#v.
func DebugContext(v any) Context {
	return Context{kind: kindDebug, val: v}
}

// ModuleContext builds a module-boundary marker cell. Renderers switch the
// active link template to meta's for frames recorded after the marker.
func ModuleContext(meta *ModuleMeta) Context {
	return Context{kind: kindModule, meta: meta}
}

// render produces the cell's display form.
func (c *Context) render() string {
	switch c.kind {
	case kindText:
		return c.text
	case kindDisplay:
		return fmt.Sprintf("%v", c.val)
	case kindDebug:
		return fmt.Sprintf("%#v", c.val)
	case kindModule:
		return "[module: " + c.meta.Name + "]"
	}
	return ""
}

// ---- ContextRef (read-only view) ----

// ContextRef is a read-only reference to a context cell, yielded by the
// Contexts methods on Annotated, Trace, and Frame.
type ContextRef struct {
	c *Context
}

// Text returns the cell's message and true for text cells.
func (r ContextRef) Text() (string, bool) {
	if r.c.kind == kindText {
		return r.c.text, true
	}
	return "", false
}

// Value returns the typed payload and true for Display/Debug cells.
// Callers may type-assert the result back to the attached type.
func (r ContextRef) Value() (any, bool) {
	if r.c.kind == kindDisplay || r.c.kind == kindDebug {
		return r.c.val, true
	}
	return nil, false
}

// Module returns the boundary metadata and true for module-marker cells.
func (r ContextRef) Module() (*ModuleMeta, bool) {
	if r.c.kind == kindModule {
		return r.c.meta, true
	}
	return nil, false
}

// IsDisplay reports whether the cell renders through a human-readable form
// (text, display value, or module marker) rather than a %#v debug dump.
func (r ContextRef) IsDisplay() bool {
	return r.c.kind != kindDebug
}

// IsModuleBoundary reports whether the cell is a module-boundary marker.
func (r ContextRef) IsModuleBoundary() bool {
	return r.c.kind == kindModule
}

// String renders the cell's display form.
func (r ContextRef) String() string {
	return r.c.render()
}

var _ fmt.Stringer = ContextRef{}
