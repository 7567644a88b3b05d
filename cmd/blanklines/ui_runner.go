package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"blanklines/internal/pipeline"
	"blanklines/internal/ui"
)

type outcome[T any] struct {
	result T
	err    error
}

// runWithUI runs work while a progress model renders its events. work
// receives the sink to report into.
func runWithUI[T any](title string, files []string, work func(pipeline.ProgressSink) (T, error)) (T, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan outcome[T], 1)

	go func() {
		res, err := work(pipeline.ChannelSink{Ch: events})
		outcomeCh <- outcome[T]{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	out := <-outcomeCh
	if uiErr != nil {
		return out.result, uiErr
	}
	return out.result, out.err
}
