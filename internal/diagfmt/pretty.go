package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"blanklines/internal/diag"
	"blanklines/internal/source"
)

// Pretty prints bag.Items() (sort the bag first) for the document at path:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// When src is non-nil the referenced source line follows with a caret
// under the column.
func Pretty(w io.Writer, path string, bag *diag.Bag, src *source.File, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	sevColor := map[diag.Severity]*color.Color{
		diag.SevInfo:    color.New(color.FgCyan),
		diag.SevWarning: color.New(color.FgYellow, color.Bold),
		diag.SevError:   color.New(color.FgRed, color.Bold),
	}
	dim := color.New(color.Faint)
	for _, c := range append([]*color.Color{dim}, sevColor[diag.SevInfo], sevColor[diag.SevWarning], sevColor[diag.SevError]) {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for _, d := range items {
		sev := d.Severity.String()
		if c, ok := sevColor[d.Severity]; ok {
			sev = c.Sprint(sev)
		}
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, d.Primary.Line, d.Primary.Col, sev, d.Code.ID(), d.Message); err != nil {
			return err
		}
		if err := writeContext(w, src, d.Primary, dim); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			if _, err := fmt.Fprintf(w, "  %s %d:%d: %s\n", dim.Sprint("note:"), n.Pos.Line, n.Pos.Col, n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeContext(w io.Writer, src *source.File, pos source.LineCol, dim *color.Color) error {
	if src == nil || pos.Line == 0 {
		return nil
	}
	line := src.GetLine(int(pos.Line))
	if line == "" {
		return nil
	}
	col := min(int(pos.Col), len(line))
	gutter := fmt.Sprintf("%5d | ", pos.Line)
	_, err := fmt.Fprintf(w, "%s%s\n%s%s^\n", dim.Sprint(gutter), line, strings.Repeat(" ", len(gutter)), strings.Repeat(" ", col))
	return err
}
