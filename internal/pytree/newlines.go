package pytree

import "fmt"

// Newlines is the annotation stored on a node: the number of newlines
// required before it. Zero means no opinion; otherwise the blank line
// count is Newlines-1.
type Newlines uint8

const (
	Unset Newlines = iota
	NoBlankLines
	OneBlankLine
	TwoBlankLines
)

func (n Newlines) IsSet() bool {
	return n != Unset
}

// BlankLines returns the number of blank lines requested, 0 when unset.
func (n Newlines) BlankLines() int {
	if n == Unset {
		return 0
	}
	return int(n) - 1
}

func (n Newlines) String() string {
	if n == Unset {
		return "unset"
	}
	return fmt.Sprintf("%d", n)
}

// NewlinesFor converts a blank line count into an annotation value.
// Negative counts are floored at NoBlankLines.
func NewlinesFor(blank int) Newlines {
	v := 1 + blank
	switch {
	case v < int(NoBlankLines):
		return NoBlankLines
	case v > 255:
		return 255
	}
	return Newlines(v)
}

// Annotation is one stamped node in pre-order.
type Annotation struct {
	Node     NodeID
	Line     int
	Column   int
	Newlines Newlines
}
