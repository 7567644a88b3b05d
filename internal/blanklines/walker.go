package blanklines

import (
	"errors"
	"fmt"

	"blanklines/internal/pytree"
	"blanklines/internal/style"
	"blanklines/internal/trace"
)

// Stats summarises one walk.
type Stats struct {
	Visited int
	// Stamped counts stamp operations; a node stamped twice counts twice.
	Stamped int
	Rules   [ruleCount]int
}

// Count returns how many stamps rule r produced.
func (s Stats) Count(r Rule) int {
	if r >= ruleCount {
		return 0
	}
	return s.Rules[r]
}

type Options struct {
	Tracer trace.Tracer
	// Parent, when set, nests the walk span under it. It should belong
	// to Tracer.
	Parent *trace.Span
	// OnStamp observes every stamp in walk order.
	OnStamp func(id pytree.NodeID, d Decision)
}

// Run annotates t in place using cfg. A nil cfg means the default style.
// Malformed trees make Run panic with a *pytree.InvariantError; run
// pytree.Validate first when the tree comes from outside.
func Run(t *pytree.Tree, cfg style.Lookup) Stats {
	return RunWith(t, cfg, Options{})
}

func RunWith(t *pytree.Tree, cfg style.Lookup, opts Options) Stats {
	if cfg == nil {
		cfg = style.Default()
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	var span *trace.Span
	if opts.Parent != nil {
		span = opts.Parent.Child(trace.ScopePass, "blanklines")
	} else {
		span = trace.Begin(opts.Tracer, trace.ScopePass, "blanklines", 0)
	}
	w := &walker{
		t:     t,
		cfg:   cfg,
		opts:  opts,
		span:  span,
		debug: opts.Tracer.Level().ShouldEmit(trace.ScopeNode),
	}
	w.visit(t.Root())
	span.End(fmt.Sprintf("visited=%d stamped=%d", w.stats.Visited, w.stats.Stamped))
	return w.stats
}

// RunChecked is Run for callers that prefer an error to a panic.
func RunChecked(t *pytree.Tree, cfg style.Lookup, opts Options) (stats Stats, err error) {
	defer func() {
		if r := recover(); r != nil {
			var inv *pytree.InvariantError
			if e, ok := r.(error); ok && errors.As(e, &inv) {
				err = inv
				return
			}
			panic(r)
		}
	}()
	return RunWith(t, cfg, opts), nil
}

type walker struct {
	t     *pytree.Tree
	cfg   style.Lookup
	st    State
	stats Stats
	opts  Options
	span  *trace.Span
	debug bool
}

func (w *walker) visit(id pytree.NodeID) {
	w.stats.Visited++
	switch kind := w.t.Kind(id); kind {
	case pytree.KindSimpleStmt:
		w.visitSimpleStmt(id)
	case pytree.KindDecorator:
		w.visitDecorator(id)
	case pytree.KindClassDef:
		w.visitClassDef(id)
	case pytree.KindFuncDef:
		w.visitFuncDef(id)
	case pytree.KindStatement, pytree.KindComposite:
		w.visitDefault(id)
	case pytree.KindToken, pytree.KindComment, pytree.KindAsync:
		// leaves carry no rule of their own
	default:
		panic(pytree.Invariantf(id, w.t.Line(id), "unknown node kind %s", kind))
	}
}

func (w *walker) visitChildren(children []pytree.NodeID) {
	for _, child := range children {
		w.visit(child)
	}
}

// visitDefault stamps the first statement after a definition.
func (w *walker) visitDefault(id pytree.NodeID) {
	if w.st.LastWasClassOrFunction && w.t.Kind(id).IsStatement() {
		leaf := w.t.FirstLeaf(id)
		w.stamp(leaf, RequiredBlankLines(w.st, w.cfg, w.t, leaf))
	}
	w.st = w.st.withDefinition(false)
	w.visitChildren(w.t.Children(id))
}

func (w *walker) visitSimpleStmt(id pytree.NodeID) {
	w.visitDefault(id)
	if first := w.t.Child(id, 0); w.t.Kind(first) == pytree.KindComment {
		w.st = w.st.withComment(w.t.EndLine(first))
	} else {
		// comments never become the previous statement
		w.st = w.st.withPrevStmt(id)
	}
}

func (w *walker) visitDecorator(id pytree.NodeID) {
	target := w.t.DecoratedTarget(id)
	if target == pytree.NoNode {
		panic(pytree.Invariantf(id, w.t.Line(id), "decorator is not bound to a class or function"))
	}
	at := w.t.Child(id, 0)
	var d Decision
	switch {
	case w.st.LastCommentLine != 0 && w.st.LastCommentLine == w.t.Line(at)-1:
		d = Decision{Newlines: pytree.NoBlankLines, Rule: RuleAttachedComment}
	case w.st.LastWasDecorator:
		d = Decision{Newlines: pytree.NoBlankLines, Rule: RuleStackedDecorator}
	case w.t.Kind(target) == pytree.KindFuncDef && w.st.PrevStmt != pytree.NoNode &&
		methodsInSameClass(w.t, w.st.PrevStmt, target):
		d = Decision{Newlines: betweenMethods(w.cfg), Rule: RuleSameClass}
	default:
		d = RequiredBlankLines(w.st, w.cfg, w.t, id)
	}
	w.stamp(at, d)
	w.visitChildren(w.t.Children(id))
	w.st = w.st.withDecorator(true)
}

func (w *walker) visitClassDef(id pytree.NodeID) {
	w.st = w.st.withDefinition(false)
	idx := w.placeLeadingComments(id)
	w.st = w.st.withDecorator(false)
	w.st = w.st.enterClass()
	w.visitChildren(w.t.Children(id)[idx:])
	w.st = w.st.leaveClass()
	w.st = w.st.withDefinition(true).withPrevStmt(id)
}

func (w *walker) visitFuncDef(id pytree.NodeID) {
	w.st = w.st.withDefinition(false)
	var idx int
	if unit := w.t.AsyncUnit(id); unit != pytree.NoNode {
		// The async marker opens the unit, so it carries the decision.
		w.placeLeadingComments(unit)
		idx = len(w.t.LeadingComments(id))
		w.t.ClearNewlines(w.t.Child(id, idx))
	} else {
		idx = w.placeLeadingComments(id)
	}
	w.st = w.st.withDecorator(false)
	w.st = w.st.enterFunction()
	w.visitChildren(w.t.Children(id)[idx:])
	w.st = w.st.leaveFunction()
	w.st = w.st.withDefinition(true).withPrevStmt(id)
}

// placeLeadingComments stamps the standalone comments that open def and
// the first token after them. It returns the index of that token's child.
func (w *walker) placeLeadingComments(def pytree.NodeID) int {
	children := w.t.Children(def)
	idx := 0
	prevEnd := 0
	for idx < len(children) && w.t.IsCommentStatement(children[idx]) {
		comment := w.t.Child(children[idx], 0)
		w.visit(comment)
		if !w.st.LastWasDecorator {
			if idx > 0 && w.t.Line(comment) == prevEnd+1 {
				w.stamp(comment, Decision{Newlines: pytree.NoBlankLines, Rule: RuleCommentBlock})
			} else {
				w.stamp(comment, Decision{Newlines: pytree.OneBlankLine, Rule: RuleLeadingComment})
			}
		}
		prevEnd = w.t.EndLine(comment)
		idx++
	}
	if idx == len(children) {
		panic(pytree.Invariantf(def, w.t.Line(def), "%s has no non-comment child", w.t.Symbol(def)))
	}

	first := children[idx]
	switch {
	case idx > 0 && w.t.Line(first)-1 == prevEnd:
		w.stamp(first, Decision{Newlines: pytree.NoBlankLines, Rule: RuleAttachedComment})
	case w.st.LastCommentLine+1 == w.t.Line(first):
		w.stamp(first, Decision{Newlines: pytree.NoBlankLines, Rule: RuleAttachedComment})
	default:
		w.stamp(first, RequiredBlankLines(w.st, w.cfg, w.t, def))
	}
	return idx
}

func (w *walker) stamp(id pytree.NodeID, d Decision) {
	w.t.SetNewlines(id, d.Newlines)
	w.stats.Stamped++
	w.stats.Rules[d.Rule]++
	if w.opts.OnStamp != nil {
		w.opts.OnStamp(id, d)
	}
	if w.debug {
		w.span.Point(trace.ScopeNode, "stamp",
			fmt.Sprintf("%d:%d %s newlines=%d", w.t.Line(id), w.t.Column(id), d.Rule, d.Newlines))
	}
}
