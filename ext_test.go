// ext_test.go — fluent propagation surface: frames, contexts, nil safety.
package xgxtrace

import (
	"errors"
	"strings"
	"testing"
)

// --- frame recording ---------------------------------------------------------

func TestAt_AppendsCallerLocation(t *testing.T) {
	t.Parallel()

	a := Start(errSentinel)
	a, want := a.At(), Here()

	if a.FrameCount() != 2 {
		t.Fatalf("expected 2 frames; got %d", a.FrameCount())
	}
	last, ok := a.LastLocation()
	if !ok {
		t.Fatalf("no last location")
	}
	if last.File != want.File || last.Line != want.Line {
		t.Fatalf("expected %v; got %v", want, last)
	}
}

func TestAt_LocationsAccumulateInCallOrder(t *testing.T) {
	t.Parallel()

	a := Start(errSentinel)
	a = a.At()
	a = a.At()

	locs := a.Locations()
	if len(locs) != 3 {
		t.Fatalf("expected 3 locations; got %d", len(locs))
	}
	for i := 1; i < len(locs); i++ {
		if locs[i].Line <= locs[i-1].Line {
			t.Fatalf("locations must follow call order; got %v", locs)
		}
	}
}

func TestAtNamed_AddsOneFrameWithOneTextCell(t *testing.T) {
	t.Parallel()

	a := Start(errSentinel)
	before := a.FrameCount()
	a = a.AtNamed("retry loop")

	if a.FrameCount() != before+1 {
		t.Fatalf("AtNamed must add exactly one frame")
	}
	frames := a.Frames()
	cs := frames[len(frames)-1].Contexts()
	if len(cs) != 1 {
		t.Fatalf("expected exactly one cell; got %d", len(cs))
	}
	if msg, ok := cs[0].Text(); !ok || msg != "retry loop" {
		t.Fatalf("unexpected cell: %q", cs[0].String())
	}
}

func TestAtFunc_LabelsFrameWithEnclosingFunction(t *testing.T) {
	t.Parallel()

	a := Start(errSentinel).AtFunc()
	cs := a.Contexts()
	if len(cs) == 0 {
		t.Fatalf("AtFunc recorded no cell")
	}
	name, ok := cs[0].Text()
	if !ok || !strings.Contains(name, "TestAtFunc_LabelsFrameWithEnclosingFunction") {
		t.Fatalf("expected enclosing test function; got %q", name)
	}
}

func TestAtSkipped_RecordsPlaceholder(t *testing.T) {
	t.Parallel()

	a := Wrap(errSentinel).AtSkipped().At()
	frames := a.Frames()
	if len(frames) != 2 {
		t.Fatalf("expected placeholder + frame; got %d", len(frames))
	}
	if !frames[0].IsSkipped() {
		t.Fatalf("first frame must be the placeholder")
	}
	if len(a.Locations()) != 1 {
		t.Fatalf("placeholder must not contribute a location")
	}
}

// --- context recording -------------------------------------------------------

func TestWithText_NeverAddsFrames(t *testing.T) {
	t.Parallel()

	a := Start(errSentinel)
	before := a.FrameCount()
	a = a.WithText("one").WithText("two").WithText("three")
	if a.FrameCount() != before {
		t.Fatalf("WithText changed the frame count")
	}
	if len(a.Contexts()) != 3 {
		t.Fatalf("expected 3 cells; got %d", len(a.Contexts()))
	}
}

func TestWithDisplayAndDebug_RetainTypedPayload(t *testing.T) {
	t.Parallel()

	type reqInfo struct {
		ID int
	}
	a := Start(errSentinel).
		WithDisplay(func() any { return reqInfo{ID: 7} }).
		WithDebug(func() any { return reqInfo{ID: 8} })

	cs := a.Contexts() // newest first
	v, ok := cs[0].Value()
	if !ok || v.(reqInfo).ID != 8 {
		t.Fatalf("debug payload lost: %v", v)
	}
	if cs[0].IsDisplay() {
		t.Fatalf("debug cell must not report IsDisplay")
	}
	v, ok = cs[1].Value()
	if !ok || v.(reqInfo).ID != 7 {
		t.Fatalf("display payload lost: %v", v)
	}
	if !cs[1].IsDisplay() {
		t.Fatalf("display cell must report IsDisplay")
	}
}

func TestWithFunc_AttachesEnclosingFunctionName(t *testing.T) {
	t.Parallel()

	a := Start(errSentinel).WithFunc()
	cs := a.Contexts()
	if len(cs) != 1 {
		t.Fatalf("expected one cell; got %d", len(cs))
	}
	name, _ := cs[0].Text()
	if !strings.Contains(name, "TestWithFunc_AttachesEnclosingFunctionName") {
		t.Fatalf("expected enclosing test function; got %q", name)
	}
}

func TestWithModule_MarksBoundary(t *testing.T) {
	t.Parallel()

	meta := &ModuleMeta{Name: "storage"}
	a := Start(errSentinel).At().WithModule(meta)

	cs := a.Contexts()
	if len(cs) != 1 || !cs[0].IsModuleBoundary() {
		t.Fatalf("boundary marker missing")
	}
	got, ok := cs[0].Module()
	if !ok || got != meta {
		t.Fatalf("marker does not carry the metadata")
	}
}

func TestSetMeta_RecordsOriginModule(t *testing.T) {
	t.Parallel()

	meta := &ModuleMeta{Name: "core"}
	a := Start(errSentinel).SetMeta(meta)
	if a.ModuleInfo() != meta {
		t.Fatalf("origin metadata not recorded")
	}
}

func TestWrapThenAttach_RoutesToAux(t *testing.T) {
	t.Parallel()

	a := Wrap(errSentinel).WithText("early note")
	if a.FrameCount() != 0 {
		t.Fatalf("attaching must not create frames")
	}
	cs := a.Contexts()
	if len(cs) != 1 || cs[0].String() != "early note" {
		t.Fatalf("aux cell lost: %v", cs)
	}
}

// --- nil safety --------------------------------------------------------------

func TestFluentMethods_NilReceiverIsNoOp(t *testing.T) {
	t.Parallel()

	var a *Annotated[error]
	a = a.At().
		AtNamed("x").
		AtFunc().
		AtSkipped().
		WithText("x").
		WithModule(&ModuleMeta{Name: "m"}).
		SetMeta(&ModuleMeta{Name: "m"}).
		WithFunc()
	if a != nil {
		t.Fatalf("chained calls on nil must stay nil")
	}
}

func TestLazyClosures_NeverRunOnNil(t *testing.T) {
	t.Parallel()

	calls := 0
	var a *Annotated[error]
	a = a.
		WithTextFunc(func() string { calls++; return "x" }).
		WithDisplay(func() any { calls++; return 1 }).
		WithDebug(func() any { calls++; return 2 })
	if a != nil {
		t.Fatalf("nil chain must stay nil")
	}
	if calls != 0 {
		t.Fatalf("closures ran %d times on the success path", calls)
	}
}

func TestWithTextFunc_RunsOncePerFailure(t *testing.T) {
	t.Parallel()

	calls := 0
	a := Start(errors.New("boom")).WithTextFunc(func() string {
		calls++
		return "built"
	})
	if calls != 1 {
		t.Fatalf("expected one invocation; got %d", calls)
	}
	if got := a.Contexts()[0].String(); got != "built" {
		t.Fatalf("unexpected cell: %q", got)
	}
}
