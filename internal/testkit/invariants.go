package testkit

import (
	"fmt"

	"blanklines/internal/pytree"
	"blanklines/internal/style"
)

// CheckAnnotations verifies the invariants every annotated tree holds:
// 1) only leaves carry annotations and every value lies in [1, limit]
// 2) an async function's def keyword is unset while its async marker is set
// 3) a decorated definition's keyword and every decorator after the first
// are stamped with no blank lines
func CheckAnnotations(t *pytree.Tree, cfg style.Lookup) error {
	if t == nil {
		return fmt.Errorf("nil tree")
	}
	if cfg == nil {
		cfg = style.Default()
	}
	limit := int(max(
		pytree.OneBlankLine,
		pytree.NewlinesFor(cfg.Int(style.OptTopLevel)),
		pytree.NewlinesFor(cfg.Int(style.OptBetweenClassDefs)),
	))

	var err error
	t.Walk(t.Root(), func(id pytree.NodeID) bool {
		if err != nil {
			return false
		}
		err = checkNode(t, id, limit)
		return err == nil
	})
	return err
}

func checkNode(t *pytree.Tree, id pytree.NodeID, limit int) error {
	n := t.Newlines(id)
	kind := t.Kind(id)
	if n.IsSet() {
		if !kind.IsLeaf() {
			return fmt.Errorf("composite %s at %d:%d carries an annotation", t.Symbol(id), t.Line(id), t.Column(id))
		}
		if int(n) > limit {
			return fmt.Errorf("annotation %d at %d:%d exceeds %d", n, t.Line(id), t.Column(id), limit)
		}
	}

	switch kind {
	case pytree.KindFuncDef:
		if !t.IsAsyncFunction(id) {
			return nil
		}
		def := t.Child(id, len(t.LeadingComments(id)))
		if t.Newlines(def).IsSet() {
			return fmt.Errorf("async function at line %d: def keyword is annotated", t.Line(id))
		}
		if !t.Newlines(t.AsyncKeyword(id)).IsSet() {
			return fmt.Errorf("async function at line %d: async keyword is not annotated", t.Line(id))
		}
	case pytree.KindDecorator:
		target := t.DecoratedTarget(id)
		if target == pytree.NoNode {
			return fmt.Errorf("decorator at line %d has no target", t.Line(id))
		}
		if prev := t.PrevSibling(id); t.Kind(prev) == pytree.KindDecorator {
			if got := t.Newlines(t.Child(id, 0)); got != pytree.NoBlankLines {
				return fmt.Errorf("stacked decorator at line %d has newlines %s", t.Line(id), got)
			}
		}
		keyword := t.Child(target, 0)
		if unit := t.AsyncUnit(target); unit != pytree.NoNode {
			keyword = t.AsyncKeyword(target)
		}
		if got := t.Newlines(keyword); got != pytree.NoBlankLines {
			return fmt.Errorf("decorated definition at line %d has newlines %s", t.Line(target), got)
		}
	}
	return nil
}
