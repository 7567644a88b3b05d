package format

import (
	"blanklines/internal/pytree"
	"blanklines/internal/source"
)

// Result is the rendered file plus the lines whose spacing was rewritten.
type Result struct {
	Content []byte
	Changed bool
	// Lines lists the annotated lines whose blank run was replaced, in
	// ascending order. A replacement that keeps the count is not listed.
	Lines []int
}

// ApplyBlankLines renders sf with the blank lines requested by anns.
func ApplyBlankLines(sf *source.File, anns []pytree.Annotation) []byte {
	return Render(sf, anns).Content
}

// Render does the work of ApplyBlankLines and reports what changed.
//
// An annotation governs its line only when it sits on the line's first
// token. The first line of the file and lines with nothing non-blank above
// them keep their spacing.
func Render(sf *source.File, anns []pytree.Annotation) Result {
	targets := lineTargets(sf, anns)
	w := NewWriter(sf)
	var (
		pending []int
		seen    bool
		changed []int
	)
	flush := func(want int, ok bool) {
		if !ok || !seen {
			for _, l := range pending {
				w.CopyLine(l)
			}
			pending = pending[:0]
			return
		}
		for i := 0; i < want; i++ {
			if i < len(pending) {
				w.CopyLine(pending[i])
			} else {
				w.BlankLine()
			}
		}
		pending = pending[:0]
	}

	n := sf.LineCount()
	for line := 1; line <= n; line++ {
		if sf.IsBlankLine(line) {
			pending = append(pending, line)
			continue
		}
		want, ok := targets[line]
		if ok && seen && want != len(pending) {
			changed = append(changed, line)
		}
		flush(want, ok)
		w.CopyLine(line)
		seen = true
	}
	flush(0, false)

	return Result{Content: w.Bytes(), Changed: w.Changed(), Lines: changed}
}

func lineTargets(sf *source.File, anns []pytree.Annotation) map[int]int {
	out := make(map[int]int, len(anns))
	for _, a := range anns {
		if !a.Newlines.IsSet() || a.Line <= 1 || a.Line > sf.LineCount() {
			continue
		}
		if _, dup := out[a.Line]; dup {
			continue
		}
		if indentWidth(sf.GetLine(a.Line)) != a.Column {
			continue
		}
		out[a.Line] = a.Newlines.BlankLines()
	}
	return out
}

func indentWidth(line string) int {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ', '\t', '\f':
		default:
			return i
		}
	}
	return len(line)
}
