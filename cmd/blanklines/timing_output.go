package main

import (
	"fmt"
	"io"
	"time"

	"blanklines/internal/observ"
	"blanklines/internal/pipeline"
)

func printFileTimings(out io.Writer, path string, timings pipeline.Timings) {
	fmt.Fprintf(out, "%s:", path)
	for _, stage := range pipeline.Stages() {
		if timings.Has(stage) {
			fmt.Fprintf(out, " %s %.1f ms", stage, toMillis(timings.Duration(stage)))
		}
	}
	fmt.Fprintln(out)
}

func printTimerSummary(out io.Writer, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(out, timer.Summary())
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
