package observ

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestTimerAggregatesByName(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx := tm.Begin("annotate")
			tm.End(idx, "")
		}()
	}
	wg.Wait()
	if err := tm.Track("render", func() error { return errors.New("boom") }); err == nil {
		t.Fatal("Track swallowed the error")
	}

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %+v", report.Phases)
	}
	if report.Phases[0].Name != "annotate" || report.Phases[0].Count != 4 {
		t.Fatalf("annotate = %+v", report.Phases[0])
	}
	if report.Phases[1].Note != "error" {
		t.Fatalf("render note = %q", report.Phases[1].Note)
	}
	if s := tm.Summary(); !strings.Contains(s, "x4") || !strings.Contains(s, "total") {
		t.Fatalf("summary = %q", s)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	tm := NewTimer()
	tm.End(3, "ignored")
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("report = %+v", r)
	}
}
