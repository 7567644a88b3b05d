package blanklines

import (
	"blanklines/internal/pytree"
	"blanklines/internal/style"
)

// Rule names the branch that produced a decision.
type Rule uint8

const (
	RuleNone             Rule = iota // nothing special applies
	RuleAfterDecorator               // the previous unit was a decorator
	RuleTopLevel                     // module-level construct in column 0
	RuleSameClass                    // consecutive methods of one class
	RuleAttachedComment              // directly below a standalone comment
	RuleStackedDecorator             // decorator below another decorator
	RuleLeadingComment               // comment opening a definition
	RuleCommentBlock                 // leading comment adjacent to the previous one
	ruleCount
)

var ruleNames = [ruleCount]string{
	RuleNone:             "none",
	RuleAfterDecorator:   "after-decorator",
	RuleTopLevel:         "top-level",
	RuleSameClass:        "same-class",
	RuleAttachedComment:  "attached-comment",
	RuleStackedDecorator: "stacked-decorator",
	RuleLeadingComment:   "leading-comment",
	RuleCommentBlock:     "comment-block",
}

func (r Rule) String() string {
	if r < ruleCount {
		return ruleNames[r]
	}
	return "unknown"
}

// Rules lists every rule in declaration order.
func Rules() []Rule {
	out := make([]Rule, 0, ruleCount)
	for r := RuleNone; r < ruleCount; r++ {
		out = append(out, r)
	}
	return out
}

// Decision is an annotation value together with the rule that chose it.
type Decision struct {
	Newlines pytree.Newlines
	Rule     Rule
}

// RequiredBlankLines evaluates the generic rule for node id in state st.
func RequiredBlankLines(st State, cfg style.Lookup, t *pytree.Tree, id pytree.NodeID) Decision {
	switch {
	case st.LastWasDecorator:
		return Decision{Newlines: pytree.NoBlankLines, Rule: RuleAfterDecorator}
	case st.TopLevel() && startsInZerothColumn(t, id):
		return Decision{Newlines: pytree.NewlinesFor(cfg.Int(style.OptTopLevel)), Rule: RuleTopLevel}
	case st.PrevStmt != pytree.NoNode && methodsInSameClass(t, st.PrevStmt, id):
		return Decision{Newlines: betweenMethods(cfg), Rule: RuleSameClass}
	}
	return Decision{Newlines: pytree.NoBlankLines, Rule: RuleNone}
}

// betweenMethods never drops below one blank line.
func betweenMethods(cfg style.Lookup) pytree.Newlines {
	return max(pytree.OneBlankLine, pytree.NewlinesFor(cfg.Int(style.OptBetweenClassDefs)))
}

func startsInZerothColumn(t *pytree.Tree, id pytree.NodeID) bool {
	if t.Column(keywordOf(t, id)) == 0 {
		return true
	}
	return t.IsAsyncFunction(id) && t.Column(t.AsyncKeyword(id)) == 0
}

// keywordOf returns the first token of a construct, skipping the leading
// comments a definition may own.
func keywordOf(t *pytree.Tree, id pytree.NodeID) pytree.NodeID {
	lead := t.LeadingComments(id)
	if len(lead) > 0 {
		if first := t.Child(id, len(lead)); first != pytree.NoNode {
			return t.FirstLeaf(first)
		}
	}
	return t.FirstLeaf(id)
}

// methodOf resolves a node to its nearest enclosing function. An async
// unit resolves to the function it wraps.
func methodOf(t *pytree.Tree, id pytree.NodeID) pytree.NodeID {
	if fn := asyncTarget(t, id); fn != pytree.NoNode {
		return fn
	}
	return t.EnclosingFunc(id)
}

// asyncTarget returns the function of an async unit (async marker followed
// by a function definition), or NoNode.
func asyncTarget(t *pytree.Tree, id pytree.NodeID) pytree.NodeID {
	if t.Kind(id).IsLeaf() {
		return pytree.NoNode
	}
	for _, child := range t.Children(id) {
		if t.Kind(child) == pytree.KindAsync {
			next := t.NextSibling(child)
			if t.Kind(next) == pytree.KindFuncDef {
				return next
			}
			return pytree.NoNode
		}
		if !t.IsCommentStatement(child) {
			return pytree.NoNode
		}
	}
	return pytree.NoNode
}

func methodsInSameClass(t *pytree.Tree, prev, curr pytree.NodeID) bool {
	prevFunc := methodOf(t, prev)
	currFunc := methodOf(t, curr)
	if prevFunc == pytree.NoNode || currFunc == pytree.NoNode {
		return false
	}
	prevClass := t.EnclosingClass(t.Parent(prevFunc))
	currClass := t.EnclosingClass(t.Parent(currFunc))
	return prevClass != pytree.NoNode && prevClass == currClass
}
