// render.go — colored terminal rendering with clickable source links.
//
// Design:
//   • Same layout as the %+v form in format.go, plus ANSI color and a
//     source URL after each location, generated through the active
//     module's link template.
//   • Link re-basing: the trace's origin metadata governs links until a
//     module-boundary marker switches the active metadata; frames after
//     the marker link into the new module's repository.
//   • Color handling is fatih/color's: output through a non-terminal
//     writer or with color.NoColor set degrades to plain text.
//   • This is the only styling surface the core ships. HTML and other
//     back-ends consume the accessor API from outside the package.
package xgxtrace

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	renderHeader   = color.New(color.FgRed, color.Bold)
	renderLocation = color.New(color.FgCyan)
	renderContext  = color.New(color.FgYellow)
	renderBoundary = color.New(color.FgMagenta)
	renderLink     = color.New(color.FgBlue, color.Underline)
)

// Render writes the full colored trace of a to w. Links are generated from
// the trace's own module metadata, when present.
func Render[E error](w io.Writer, a *Annotated[E]) error {
	return renderTrace(w, a.Error(), a.Trace(), nil)
}

// RenderMeta is Render with fallback module metadata: meta governs source
// links until the trace's own metadata or a boundary marker overrides it.
func RenderMeta[E error](w io.Writer, a *Annotated[E], meta *ModuleMeta) error {
	return renderTrace(w, a.Error(), a.Trace(), meta)
}

func renderTrace(w io.Writer, msg string, t *Trace, meta *ModuleMeta) error {
	if _, err := renderHeader.Fprint(w, "Error:"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, " %s\n", msg); err != nil {
		return err
	}
	if t == nil {
		return nil
	}
	if m := t.Meta(); m != nil {
		meta = m
	}
	for _, c := range reversedAux(t) {
		if err := renderCell(w, c); err != nil {
			return err
		}
	}
	for _, f := range t.Frames() {
		var err error
		if meta, err = renderFrame(w, &f, meta); err != nil {
			return err
		}
	}
	return nil
}

// renderFrame writes one frame and returns the metadata active after it
// (boundary markers on the frame re-base subsequent links).
func renderFrame(w io.Writer, f *Frame, meta *ModuleMeta) (*ModuleMeta, error) {
	cs := f.Contexts()
	for _, c := range cs {
		if m, ok := c.Module(); ok {
			meta = m
			if err := renderRule(w, m); err != nil {
				return meta, err
			}
		}
	}
	if loc, ok := f.Location(); ok {
		if _, err := io.WriteString(w, "    at "); err != nil {
			return meta, err
		}
		if _, err := renderLocation.Fprint(w, loc.String()); err != nil {
			return meta, err
		}
		if url, ok := meta.LinkURL(loc); ok {
			if _, err := io.WriteString(w, " ("); err != nil {
				return meta, err
			}
			if _, err := renderLink.Fprint(w, url); err != nil {
				return meta, err
			}
			if _, err := io.WriteString(w, ")"); err != nil {
				return meta, err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return meta, err
		}
	} else {
		if _, err := io.WriteString(w, "    [...]\n"); err != nil {
			return meta, err
		}
	}
	for i := len(cs) - 1; i >= 0; i-- {
		if cs[i].IsModuleBoundary() {
			continue
		}
		if err := renderCell(w, cs[i]); err != nil {
			return meta, err
		}
	}
	return meta, nil
}

func renderCell(w io.Writer, c ContextRef) error {
	if _, err := io.WriteString(w, "       ╰─ "); err != nil {
		return err
	}
	if _, err := renderContext.Fprint(w, c.String()); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func renderRule(w io.Writer, m *ModuleMeta) error {
	if _, err := renderBoundary.Fprintf(w, "─── → %s", m.Name); err != nil {
		return err
	}
	if m.Repo != "" {
		if _, err := fmt.Fprintf(w, " (%s)", m.Repo); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, " ───\n")
	return err
}
