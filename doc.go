// doc.go — package documentation for xgx-trace
//
// Package xgxtrace records WHERE an error traveled. It wraps any error in a
// generic Annotated[E] that accumulates explicitly marked source locations
// and per-location context, without capturing machine stacks and without
// touching the success path. It is designed to be:
//   - Free on the Ok branch (the nil wrapper is the success value; every
//     propagation method is a nil-safe no-op)
//   - Interoperable with the stdlib (errors.Is/As via Unwrap, fmt.Formatter)
//   - Policy-free (no logging/HTTP rules in core; rendering is fmt + one
//     optional terminal renderer)
//
// # Marked Locations, Not Stack Traces
//
// A trace contains exactly the frames the code marked, in propagation
// order. Nothing walks the runtime stack: a frame is recorded only where a
// call site says so. That keeps capture cost proportional to the marks and
// makes the trace read as a narrative of the error's actual journey,
// including hops a stack trace cannot see (queues, callbacks, retries).
//
//	func load(id int) *xgxtrace.Annotated[error] {
//	    if err := db.Get(id); err != nil {
//	        return xgxtrace.Start(err)       // origin frame
//	    }
//	    return nil
//	}
//
//	func handle(id int) *xgxtrace.Annotated[error] {
//	    return load(id).
//	        At().                            // one frame per hop
//	        WithTextFunc(func() string {     // built only on failure
//	            return fmt.Sprintf("handling id=%d", id)
//	        })
//	}
//
// # When Are Locations Captured?
//
//	+--------------------------+----------------------+
//	| Operation                | Records a frame?     |
//	+--------------------------+----------------------+
//	| Wrap(err)                | NO (frames accrue    |
//	|                          | later via At)        |
//	| Start(err)               | YES (origin, caller) |
//	| StartAt(err, loc, meta)  | YES (explicit loc)   |
//	| At / AtNamed / AtFunc    | YES (caller)         |
//	| AtSkipped                | placeholder only     |
//	| WithText / WithDisplay / | NO (attaches to the  |
//	| WithDebug / WithModule   | newest frame)        |
//	+--------------------------+----------------------+
//
// Context attached before any frame exists (a Wrap-constructed value) goes
// to an auxiliary list and is never lost.
//
// # Crossing Module Boundaries
//
// Register a ModuleMeta per module and mark transitions with WithModule.
// Renderers switch the active link template at each marker, so every frame
// links into the repository that owns it. Four forge link formats ship
// built in (GitHub, GitLab, Bitbucket, Gitea); CustomLink accepts any
// template over {repo}, {commit}, {path}, {file}, {line}.
//
// # Embedding a Trace
//
// Error types that should carry their own trace embed TraceHolder and
// satisfy Traceable; ExtendEmbedded/AttachEmbedded mirror the wrapper
// surface, and IntoEmbedded/FromEmbedded move a trace between carriers
// without copying frames.
//
// # Formatting
//
// Annotated implements fmt.Formatter:
//   - `%v`, `%s`   → concise, single-line Error() (the inner message)
//   - `%+v`        → verbose, multi-line trace (origin first)
//   - `%q`         → quoted Error()
//
// Render/RenderMeta produce the same layout with ANSI color and clickable
// source links.
//
// # Performance Notes
//
//   - The wrapper adds one pointer over the inner error; all trace state
//     lives behind it.
//   - Nothing allocates until the first frame or cell is recorded.
//   - WithTextFunc/WithDisplay/WithDebug take closures so the cost of
//     building a message is paid only on the failure path.
//   - The xgxtrace_small build tag switches frame storage to an inline
//     array of four frames that spills to the heap, trading Trace size for
//     one less allocation on short traces.
//
// # Interop
//
//   - *Annotated[E] implements error; Unwrap exposes the inner error, so
//     errors.Is/As behave as if the wrapper were not there.
//   - Equality is the inner error's: Equal ignores traces, and map users
//     key on Inner().
package xgxtrace
