package pytree

import "fmt"

// InvariantError reports a tree shape the blank-line engine cannot handle.
// The walker panics with it; Validate reports the same conditions as
// diagnostics up front.
type InvariantError struct {
	Node NodeID
	Line int
	Msg  string
}

func (e *InvariantError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("tree invariant violated at node %d (line %d): %s", e.Node, e.Line, e.Msg)
	}
	return fmt.Sprintf("tree invariant violated at node %d: %s", e.Node, e.Msg)
}

func Invariantf(id NodeID, line int, format string, args ...any) *InvariantError {
	return &InvariantError{Node: id, Line: line, Msg: fmt.Sprintf(format, args...)}
}
