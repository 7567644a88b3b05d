package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
		{LevelDebug, 0, false},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevelModeFormat(t *testing.T) {
	if l, err := ParseLevel(" DEBUG "); err != nil || l != LevelDebug {
		t.Fatalf("ParseLevel(DEBUG) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode(both) = %v, %v", m, err)
	}
	if _, err := ParseMode(""); err == nil {
		t.Fatalf("expected error for empty mode")
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(json) = %v, %v", f, err)
	}
	if formatForPath("out.NDJSON") != FormatNDJSON || formatForPath("out.log") != FormatText {
		t.Fatalf("format not picked from extension")
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d"} {
		Point(r, ScopeNode, name, 0, "")
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot len = %d, want 3", len(snap))
	}
	got := []string{snap[0].Name, snap[1].Name, snap[2].Name}
	if strings.Join(got, "") != "bcd" {
		t.Fatalf("snapshot order = %v", got)
	}
	if r.Dropped() != 1 {
		t.Fatalf("dropped = %d, want 1", r.Dropped())
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	span := BeginFile(st, "a.tree.json", 0)
	span.Point(ScopeNode, "dropped", "")
	span.Attr("stamped", "3").End("ok")
	if err := st.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d events, want 2:\n%s", len(lines), buf.String())
	}
	var end jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatal(err)
	}
	if end.Kind != "end" || end.Scope != "file" || end.Detail != "ok" || end.Attrs["stamped"] != "3" || end.File != "a.tree.json" {
		t.Fatalf("unexpected end event %+v", end)
	}
}

func TestChildrenInheritFile(t *testing.T) {
	r := NewRingTracer(16, LevelDebug)
	root := Begin(r, ScopeDriver, "fmt", 0)
	file := BeginFile(r, "pkg/a.tree.json", root.ID())
	stage := file.Child(ScopePass, "render")
	stage.Point(ScopeNode, "stamp", "3:0")
	stage.End("")
	file.End("")
	root.End("")

	for _, ev := range r.Snapshot() {
		inFile := ev.Scope != ScopeDriver
		if inFile != (ev.File == "pkg/a.tree.json") {
			t.Fatalf("event %s/%s has file %q", ev.Scope, ev.Name, ev.File)
		}
	}
	var text bytes.Buffer
	if err := r.Dump(&text, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text.String(), "• stamp (3:0) @pkg/a.tree.json") {
		t.Fatalf("text dump missing stamp point:\n%s", text.String())
	}
}

func TestErrorLevelKeepsOnlyFailures(t *testing.T) {
	r := NewRingTracer(16, LevelError)
	file := BeginFile(r, "bad.tree.json", 0)
	file.Child(ScopePass, "load").EndErr(errors.New("boom"))
	file.Child(ScopePass, "validate").EndErr(nil)
	file.End("")

	snap := r.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("got %d events, want the failed end only: %+v", len(snap), snap)
	}
	if ev := snap[0]; !ev.Failed || ev.Name != "load" || ev.Detail != "error: boom" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestTeeUsesMostVerboseLevel(t *testing.T) {
	phase := NewRingTracer(8, LevelPhase)
	debug := NewRingTracer(8, LevelDebug)
	tee := Tee(phase, nil, debug)
	if tee.Level() != LevelDebug || tee.Ring() != phase {
		t.Fatalf("tee level %s ring %p", tee.Level(), tee.Ring())
	}
	Point(tee, ScopeNode, "n", 0, "")
	Begin(tee, ScopePass, "p", 0).End("")
	if len(phase.Snapshot()) != 2 || len(debug.Snapshot()) != 3 {
		t.Fatalf("phase got %d, debug got %d", len(phase.Snapshot()), len(debug.Snapshot()))
	}
}

func TestContextRoundTrip(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("missing tracer should be Nop")
	}
	r := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatalf("tracer not propagated")
	}
	if SpanFrom(ctx).ID() != 0 {
		t.Fatalf("no span attached yet")
	}
	span := Begin(r, ScopeDriver, "x", 0)
	if got := SpanFrom(WithSpan(ctx, span)); got != span {
		t.Fatalf("span not propagated")
	}
	if nop := Begin(Nop, ScopeDriver, "x", 0); nop.ID() != 0 || nop.Child(ScopePass, "y").ID() != 0 {
		t.Fatalf("nop spans should have no id")
	}
}
