package format

import (
	"bytes"

	"blanklines/internal/source"
)

// Writer accumulates rendered output, copying source lines verbatim.
type Writer struct {
	sf  *source.File
	buf []byte
}

// NewWriter creates a writer that copies from sf.
func NewWriter(sf *source.File) *Writer {
	return &Writer{
		sf:  sf,
		buf: make([]byte, 0, len(sf.Content)+64),
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// CopyLine copies line (1-based) including its newline.
func (w *Writer) CopyLine(line int) {
	w.CopySpan(w.sf.LineSpan(line))
}

// CopySpan copies a span from the source file to the output.
func (w *Writer) CopySpan(sp source.Span) {
	if sp.Empty() || w.sf == nil || sp.File != w.sf.ID {
		return
	}
	w.CopyRange(int(sp.Start), int(sp.End))
}

// CopyRange copies a range of bytes from the source file to the output.
func (w *Writer) CopyRange(start, end int) {
	if w.sf == nil {
		return
	}
	if start < 0 {
		start = 0
	}
	if end > len(w.sf.Content) {
		end = len(w.sf.Content)
	}
	if start >= end {
		return
	}
	w.buf = append(w.buf, w.sf.Content[start:end]...)
}

// BlankLine writes an empty line, terminating the previous line first if
// the output does not end with a newline.
func (w *Writer) BlankLine() {
	if len(w.buf) > 0 && w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.buf = append(w.buf, '\n')
}

// Changed reports whether the output differs from the source.
func (w *Writer) Changed() bool {
	return !bytes.Equal(w.buf, w.sf.Content)
}
