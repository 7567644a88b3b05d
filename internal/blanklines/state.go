package blanklines

import "blanklines/internal/pytree"

// State is the traversal context. Transitions return an updated copy.
type State struct {
	ClassLevel    int
	FunctionLevel int
	// LastCommentLine is the end line of the most recent standalone
	// comment statement, 0 when none was seen.
	LastCommentLine        int
	LastWasDecorator       bool
	LastWasClassOrFunction bool
	// PrevStmt is the most recent non-comment statement or definition.
	PrevStmt pytree.NodeID
}

// TopLevel reports whether the walk is outside every class and function.
func (s State) TopLevel() bool {
	return s.ClassLevel == 0 && s.FunctionLevel == 0
}

func (s State) enterClass() State {
	s.ClassLevel++
	return s
}

func (s State) leaveClass() State {
	s.ClassLevel--
	return s
}

func (s State) enterFunction() State {
	s.FunctionLevel++
	return s
}

func (s State) leaveFunction() State {
	s.FunctionLevel--
	return s
}

func (s State) withComment(endLine int) State {
	s.LastCommentLine = endLine
	return s
}

func (s State) withPrevStmt(id pytree.NodeID) State {
	s.PrevStmt = id
	return s
}

func (s State) withDecorator(v bool) State {
	s.LastWasDecorator = v
	return s
}

func (s State) withDefinition(v bool) State {
	s.LastWasClassOrFunction = v
	return s
}
