package pytree

import (
	"fmt"

	"fortio.org/safecast"

	"blanklines/internal/diag"
	"blanklines/internal/source"
)

// Validate checks the shape the blank-line walker relies on and reports
// each violation. It returns true when no errors were found.
func Validate(t *Tree, r diag.Reporter) bool {
	if r == nil {
		r = diag.NopReporter{}
	}
	if t.get(t.Root()) == nil {
		diag.ReportError(r, diag.TreeEmptyComposite, source.LineCol{}, "tree has no root")
		return false
	}
	v := validator{t: t, r: r}
	t.Walk(t.Root(), func(id NodeID) bool {
		v.check(id)
		return true
	})
	return v.errors == 0
}

type validator struct {
	t      *Tree
	r      diag.Reporter
	errors int
}

func (v *validator) report(code diag.Code, id NodeID, format string, args ...any) {
	v.errors++
	diag.ReportError(v.r, code, v.pos(id), fmt.Sprintf(format, args...))
}

func (v *validator) pos(id NodeID) source.LineCol {
	line, errLine := safecast.Conv[uint32](v.t.Line(id))
	col, errCol := safecast.Conv[uint32](v.t.Column(id))
	if errLine != nil || errCol != nil {
		return source.LineCol{}
	}
	return source.LineCol{Line: line, Col: col}
}

func (v *validator) check(id NodeID) {
	t := v.t
	n := t.get(id)
	if !n.kind.IsValid() {
		v.report(diag.TreeUnknownKind, id, "node %q has unknown kind %d", n.symbol, n.kind)
		return
	}
	if n.kind.IsLeaf() {
		if n.line < 1 || n.column < 0 {
			v.report(diag.TreeBadPosition, id, "%s leaf at %d:%d", n.symbol, n.line, n.column)
		}
		if n.kind == KindAsync && !v.asyncTarget(t.NextSibling(id)) {
			v.report(diag.TreeAsyncNoTarget, id, "async is not followed by def, with or for")
		}
		return
	}

	if len(n.children) == 0 {
		v.report(diag.TreeEmptyComposite, id, "%s has no children", n.symbol)
		return
	}
	for i, child := range n.children {
		c := t.get(child)
		if c == nil || c.parent != id || c.index != i {
			v.report(diag.TreeParentMismatch, id, "child %d of %s does not link back to it", i, n.symbol)
		}
	}

	switch n.kind {
	case KindDecorator:
		if t.DecoratedTarget(id) == NoNode {
			v.report(diag.TreeDecoratorNoTarget, id, "decorator is not followed by a class or function")
		}
	case KindClassDef, KindFuncDef:
		if t.firstNonComment(id) < 0 {
			v.report(diag.TreeDefinitionNoKeyword, id, "%s holds only comments", n.symbol)
		}
	}
}

func (v *validator) asyncTarget(id NodeID) bool {
	switch {
	case v.t.Kind(id) == KindFuncDef:
		return true
	case v.t.Symbol(id) == SymWithStmt, v.t.Symbol(id) == SymForStmt:
		return true
	}
	return false
}

// firstNonComment returns the index of the first child that is not a
// standalone comment, or -1.
func (t *Tree) firstNonComment(id NodeID) int {
	for i, child := range t.Children(id) {
		if !t.IsCommentStatement(child) {
			return i
		}
	}
	return -1
}

// LeadingComments returns the standalone comment statements that open a
// definition, in order.
func (t *Tree) LeadingComments(id NodeID) []NodeID {
	children := t.Children(id)
	idx := t.firstNonComment(id)
	if idx < 0 {
		return children
	}
	return children[:idx]
}
