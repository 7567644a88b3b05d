package pipeline

import (
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestRecorderFinal(t *testing.T) {
	var r Recorder
	EmitQueued(&r, []string{"a", "b"})
	Emit(&r, Event{File: "a", Stage: StageAnnotate, Status: StatusWorking})
	Emit(&r, Event{File: "a", Stage: StageWrite, Status: StatusDone})
	Emit(&r, Event{File: "b", Stage: StageValidate, Status: StatusError})
	Emit(nil, Event{File: "ignored"})

	final := r.Final()
	if final["a"] != StatusDone || final["b"] != StatusError {
		t.Fatalf("final = %v", final)
	}
	if len(r.Events()) != 5 {
		t.Fatalf("events = %d", len(r.Events()))
	}
}

func TestTimingsSum(t *testing.T) {
	var tm Timings
	tm.Add(StageLoad, time.Millisecond)
	tm.Add(StageLoad, time.Millisecond)
	tm.Add(StageRender, 3*time.Millisecond)
	if !tm.Has(StageLoad) || tm.Has(StageWrite) {
		t.Fatal("Has mismatch")
	}
	if got := tm.Sum(StageLoad, StageRender); got != 5*time.Millisecond {
		t.Fatalf("sum = %v", got)
	}
}

func TestDisplayPaths(t *testing.T) {
	base := t.TempDir()
	files := []string{
		filepath.Join(base, "pkg", "a.py.tree.json"),
		filepath.Join(base, "pkg", "a.py.tree.json"),
		"",
		filepath.Join(base, "b.py.tree.json"),
	}
	got := DisplayPaths(files, base)
	want := []string{"pkg/a.py.tree.json", "b.py.tree.json"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
