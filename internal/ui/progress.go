package ui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"blanklines/internal/pipeline"
)

// outcome is where a document stands in the run.
type outcome uint8

const (
	pending outcome = iota
	finished
	unchanged
	failed
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	workingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	finishedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	unchangedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	queuedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

const statusWidth = 12

type document struct {
	path    string
	stage   pipeline.Stage
	working bool
	outcome outcome
	elapsed time.Duration
}

func (d document) label() string {
	switch d.outcome {
	case finished:
		return "done"
	case unchanged:
		return "unchanged"
	case failed:
		return "error"
	}
	if !d.working {
		return "queued"
	}
	return stageLabel(d.stage)
}

func (d document) style() lipgloss.Style {
	switch d.outcome {
	case finished:
		return finishedStyle
	case unchanged:
		return unchangedStyle
	case failed:
		return failedStyle
	}
	if d.working {
		return workingStyle
	}
	return queuedStyle
}

// fraction is how far the document is through the stages, in [0, 1].
func (d document) fraction() float64 {
	if d.outcome != pending {
		return 1
	}
	if !d.working {
		return 0
	}
	stages := pipeline.Stages()
	i := slices.Index(stages, d.stage)
	if i < 0 {
		return 0
	}
	return (float64(i) + 0.5) / float64(len(stages))
}

type progressModel struct {
	title   string
	events  <-chan pipeline.Event
	spinner spinner.Model
	bar     progress.Model
	docs    []document
	index   map[string]int
	width   int
	done    bool
}

type eventMsg pipeline.Event

type closedMsg struct{}

// NewProgressModel returns a Bubble Tea model that lists the documents of a
// run with their current stage until events is closed.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(workingStyle))
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(76))

	docs := make([]document, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		docs[i] = document{path: file}
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		docs:    docs,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(pipeline.Event(msg)), m.next())
	case closedMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.docs) == 0 {
		return ""
	}
	var b strings.Builder
	header := m.title
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-14, 20)
	for _, d := range m.docs {
		status := d.style().Render(fmt.Sprintf("%*s", statusWidth, d.label()))
		fmt.Fprintf(&b, "  %s %s", status, truncate(d.path, nameWidth))
		if d.outcome != pending && d.elapsed > 0 {
			b.WriteString(unchangedStyle.Render(fmt.Sprintf("  %s", d.elapsed.Round(time.Millisecond))))
		}
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	b.WriteString(m.summary())
	b.WriteString("\n")
	return b.String()
}

// summary counts the documents by outcome.
func (m *progressModel) summary() string {
	var counts [failed + 1]int
	for _, d := range m.docs {
		counts[d.outcome]++
	}
	parts := []string{fmt.Sprintf("%d/%d", len(m.docs)-counts[pending], len(m.docs))}
	if counts[finished] > 0 {
		parts = append(parts, finishedStyle.Render(fmt.Sprintf("%d done", counts[finished])))
	}
	if counts[unchanged] > 0 {
		parts = append(parts, unchangedStyle.Render(fmt.Sprintf("%d unchanged", counts[unchanged])))
	}
	if counts[failed] > 0 {
		parts = append(parts, failedStyle.Render(fmt.Sprintf("%d failed", counts[failed])))
	}
	return strings.Join(parts, "  ")
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev pipeline.Event) tea.Cmd {
	i, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	d := &m.docs[i]
	switch ev.Status {
	case pipeline.StatusQueued:
		*d = document{path: d.path}
	case pipeline.StatusWorking:
		d.working, d.stage = true, ev.Stage
	case pipeline.StatusDone:
		d.outcome, d.elapsed = finished, ev.Elapsed
		if ev.Stage == pipeline.StageRender {
			d.outcome = unchanged
		}
	case pipeline.StatusError:
		d.outcome, d.elapsed = failed, ev.Elapsed
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.docs) == 0 {
		return 0
	}
	total := 0.0
	for _, d := range m.docs {
		total += d.fraction()
	}
	return total / float64(len(m.docs))
}

var stageLabels = map[pipeline.Stage]string{
	pipeline.StageLoad:     "loading",
	pipeline.StageValidate: "validating",
	pipeline.StageAnnotate: "annotating",
	pipeline.StageRender:   "rendering",
	pipeline.StageWrite:    "writing",
}

func stageLabel(stage pipeline.Stage) string {
	if label, ok := stageLabels[stage]; ok {
		return label
	}
	return string(stage)
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
