// location_test.go — verification of caller-location capture.
package xgxtrace

import (
	"strings"
	"testing"
)

// --- Helpers to build a known call chain -------------------------------------

// locGrab captures the location skipExtra frames above its caller.
func locGrab(skipExtra int) Location {
	return caller(skipExtra + 1)
}

func locTestLevel2(skipExtra int) Location {
	// With skipExtra=0 the captured location is inside this function.
	return locGrab(skipExtra)
}

func locTestLevel1(skipExtra int) Location {
	return locTestLevel2(skipExtra)
}

func fnGrab(skipExtra int) string {
	return callerFunction(skipExtra + 1)
}

func fnTestLevel2(skipExtra int) string {
	return fnGrab(skipExtra)
}

func fnTestLevel1(skipExtra int) string {
	return fnTestLevel2(skipExtra)
}

// --- Tests -------------------------------------------------------------------

func TestHere_CapturesThisFile(t *testing.T) {
	t.Parallel()

	loc := Here()
	if loc.IsZero() {
		t.Fatalf("Here returned a zero location")
	}
	if !strings.HasSuffix(loc.File, "location_test.go") {
		t.Fatalf("expected this file; got %q", loc.File)
	}
	if loc.Line <= 0 {
		t.Fatalf("expected positive line; got %d", loc.Line)
	}
	if loc.Column != 0 {
		t.Fatalf("captured locations must have Column 0; got %d", loc.Column)
	}
}

func TestCaller_SkipSelectsExpectedFrame(t *testing.T) {
	t.Parallel()

	// skipExtra = 0 → location inside locTestLevel2 (this file).
	l0 := locTestLevel1(0)
	if !strings.HasSuffix(l0.File, "location_test.go") {
		t.Fatalf("expected capture in this file; got %q", l0.File)
	}

	// skipExtra = 1 → location inside locTestLevel1: one frame further up,
	// still this file but a different line.
	l1 := locTestLevel1(1)
	if !strings.HasSuffix(l1.File, "location_test.go") {
		t.Fatalf("expected capture in this file; got %q", l1.File)
	}
	if l0.Line == l1.Line {
		t.Fatalf("different skips should land on different lines; both %d", l0.Line)
	}
}

func TestCaller_AbsurdSkipReturnsZero(t *testing.T) {
	t.Parallel()

	const absurdSkip = 1 << 20
	loc := caller(absurdSkip)
	if !loc.IsZero() {
		t.Fatalf("expected zero location for absurd skip; got %v", loc)
	}
}

func TestCallerFunction_SkipSelectsExpectedFrame(t *testing.T) {
	t.Parallel()

	f0 := fnTestLevel1(0)
	if !strings.HasSuffix(f0, "fnTestLevel2") {
		t.Fatalf("expected fnTestLevel2; got %q", f0)
	}

	f1 := fnTestLevel1(1)
	if !strings.HasSuffix(f1, "fnTestLevel1") {
		t.Fatalf("expected fnTestLevel1; got %q", f1)
	}
}

func TestCallerFunction_AbsurdSkipReturnsEmpty(t *testing.T) {
	t.Parallel()

	const absurdSkip = 1 << 20
	if fn := callerFunction(absurdSkip); fn != "" {
		t.Fatalf("expected empty name for absurd skip; got %q", fn)
	}
}

func TestLocation_String(t *testing.T) {
	t.Parallel()

	l := Location{File: "pkg/db.go", Line: 42}
	if got := l.String(); got != "pkg/db.go:42" {
		t.Fatalf("unexpected String: %q", got)
	}

	l.Column = 7
	if got := l.String(); got != "pkg/db.go:42:7" {
		t.Fatalf("unexpected String with column: %q", got)
	}
}

func TestLocation_IsZero(t *testing.T) {
	t.Parallel()

	if !(Location{}).IsZero() {
		t.Fatalf("zero value must report IsZero")
	}
	if (Location{File: "a.go", Line: 1}).IsZero() {
		t.Fatalf("populated location must not report IsZero")
	}
}
