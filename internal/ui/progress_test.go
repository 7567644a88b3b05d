package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"blanklines/internal/pipeline"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	events := make(chan pipeline.Event)
	files := []string{"a.py.tree.json", "b.py.tree.json", "c.py.tree.json"}
	m := NewProgressModel("fmt", files, events).(*progressModel)

	m.apply(pipeline.Event{File: "a.py.tree.json", Stage: pipeline.StageAnnotate, Status: pipeline.StatusWorking})
	if got := m.docs[0].label(); got != "annotating" {
		t.Fatalf("label = %q", got)
	}
	if got := m.docs[1].label(); got != "queued" {
		t.Fatalf("untouched label = %q", got)
	}
	if p := m.percent(); p <= 0 || p >= 1 {
		t.Fatalf("percent mid-run = %v", p)
	}

	m.apply(pipeline.Event{File: "a.py.tree.json", Stage: pipeline.StageRender, Status: pipeline.StatusDone})
	m.apply(pipeline.Event{File: "b.py.tree.json", Stage: pipeline.StageWrite, Status: pipeline.StatusDone, Elapsed: 3 * time.Millisecond})
	m.apply(pipeline.Event{File: "c.py.tree.json", Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: errors.New("boom")})
	m.apply(pipeline.Event{File: "missing", Stage: pipeline.StageWrite, Status: pipeline.StatusDone})

	want := []string{"unchanged", "done", "error"}
	for i, w := range want {
		if got := m.docs[i].label(); got != w {
			t.Fatalf("doc %d label = %q, want %q", i, got, w)
		}
	}
	if got := m.percent(); got != 1.0 {
		t.Fatalf("percent = %v", got)
	}
	view := m.View()
	for _, s := range []string{"unchanged", "b.py.tree.json", "3ms", "3/3", "1 failed"} {
		if !strings.Contains(view, s) {
			t.Fatalf("view missing %q:\n%s", s, view)
		}
	}
}

func TestQueuedResetsDocument(t *testing.T) {
	m := NewProgressModel("annotate", []string{"a.tree.json"}, nil).(*progressModel)
	m.apply(pipeline.Event{File: "a.tree.json", Stage: pipeline.StageLoad, Status: pipeline.StatusError})
	m.apply(pipeline.Event{File: "a.tree.json", Status: pipeline.StatusQueued})
	if got := m.docs[0].label(); got != "queued" || m.percent() != 0 {
		t.Fatalf("label = %q percent = %v", got, m.percent())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 6); got != "abc" {
		t.Fatalf("truncate short = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("truncate tiny = %q", got)
	}
}
