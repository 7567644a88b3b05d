package testkit

import (
	"fmt"
	"strings"

	"blanklines/internal/pytree"
)

type treeBuilder struct {
	b *pytree.Builder
}

// items converts one block. Runs of decorators are grouped with the
// definition that follows; comments ahead of an undecorated definition
// become its leading children.
func (tb *treeBuilder) items(items []*item) ([]pytree.NodeID, error) {
	var out []pytree.NodeID
	var comments []*item
	flush := func() {
		for _, c := range comments {
			out = append(out, tb.comment(c))
		}
		comments = nil
	}
	for i := 0; i < len(items); i++ {
		it := items[i]
		switch {
		case it.kind == itemComment:
			comments = append(comments, it)
		case it.kind == itemDecorator:
			flush()
			var decorators []pytree.NodeID
			for i < len(items) && items[i].kind == itemDecorator {
				decorators = append(decorators, tb.decorator(items[i]))
				i++
			}
			if i == len(items) || !items[i].isDefinition() {
				return nil, fmt.Errorf("sketch line %d: decorator must be followed by class or def", it.line)
			}
			def, err := tb.definition(items[i], nil, true)
			if err != nil {
				return nil, err
			}
			group := decorators[0]
			if len(decorators) > 1 {
				group = tb.b.Node(pytree.SymDecorators, decorators...)
			}
			out = append(out, tb.b.Node(pytree.SymDecorated, group, def))
		case it.isDefinition():
			def, err := tb.definition(it, comments, false)
			if err != nil {
				return nil, err
			}
			comments = nil
			out = append(out, def)
		case it.kind == itemHeader:
			flush()
			stmt, err := tb.compound(it)
			if err != nil {
				return nil, err
			}
			out = append(out, stmt)
		default:
			flush()
			out = append(out, tb.simple(it))
		}
	}
	flush()
	return out, nil
}

func (tb *treeBuilder) comment(c *item) pytree.NodeID {
	lastLen := len(c.text)
	if i := strings.LastIndexByte(c.text, '\n'); i >= 0 {
		lastLen = len(c.text) - i - 1
	}
	return tb.b.Node(pytree.SymSimpleStmt,
		tb.b.Leaf(pytree.TokComment, c.text, c.line, c.col),
		tb.b.Leaf(pytree.TokNewline, "\n", c.endLine, c.col+lastLen),
	)
}

func (tb *treeBuilder) decorator(it *item) pytree.NodeID {
	return tb.b.Node(pytree.SymDecorator,
		tb.b.Leaf(pytree.TokOp, "@", it.line, it.col),
		tb.b.Leaf(pytree.TokName, it.text[1:], it.line, it.col+1),
		tb.b.Leaf(pytree.TokNewline, "\n", it.line, it.col+len(it.text)),
	)
}

var simpleSymbols = map[string]string{
	"return":   "return_stmt",
	"import":   "import_stmt",
	"from":     "import_stmt",
	"raise":    "raise_stmt",
	"del":      "del_stmt",
	"global":   "global_stmt",
	"nonlocal": "nonlocal_stmt",
	"assert":   "assert_stmt",
	"print":    "print_stmt",
}

func (tb *treeBuilder) simple(it *item) pytree.NodeID {
	return tb.simpleAt(it.text, it.line, it.col)
}

func (tb *treeBuilder) simpleAt(text string, line, col int) pytree.NodeID {
	first, rest, found := strings.Cut(text, " ")
	var stmt pytree.NodeID
	if !found {
		stmt = tb.b.Leaf(pytree.TokName, first, line, col)
	} else {
		sym, ok := simpleSymbols[first]
		if !ok {
			sym = pytree.SymExprStmt
		}
		stmt = tb.b.Node(sym,
			tb.b.Leaf(pytree.TokName, first, line, col),
			tb.b.Leaf(pytree.TokName, strings.TrimSpace(rest), line, col+len(first)+1),
		)
	}
	return tb.b.Node(pytree.SymSimpleStmt, stmt, tb.b.Leaf(pytree.TokNewline, "\n", line, col+len(text)))
}

// definition builds a class, a function or an async function. Undecorated
// async functions become async_stmt with the comments ahead of the unit;
// decorated ones async_funcdef.
func (tb *treeBuilder) definition(it *item, comments []*item, decorated bool) (pytree.NodeID, error) {
	lead := make([]pytree.NodeID, 0, len(comments))
	for _, c := range comments {
		lead = append(lead, tb.comment(c))
	}
	if it.keyword() != "async" {
		return tb.header(it, it.text, it.col, lead)
	}
	fn, err := tb.header(it, strings.TrimPrefix(it.text, "async "), it.col+len("async "), nil)
	if err != nil {
		return pytree.NoNode, err
	}
	kw := tb.b.Leaf(pytree.TokAsync, "async", it.line, it.col)
	if decorated {
		return tb.b.Node(pytree.SymAsyncFuncDef, kw, fn), nil
	}
	return tb.b.Node(pytree.SymAsyncStmt, append(lead, kw, fn)...), nil
}

func (tb *treeBuilder) compound(it *item) (pytree.NodeID, error) {
	if it.keyword() == "async" {
		inner, err := tb.header(it, strings.TrimPrefix(it.text, "async "), it.col+len("async "), nil)
		if err != nil {
			return pytree.NoNode, err
		}
		return tb.b.Node(pytree.SymAsyncStmt, tb.b.Leaf(pytree.TokAsync, "async", it.line, it.col), inner), nil
	}
	return tb.header(it, it.text, it.col, nil)
}

// header builds "<kw> <rest>:" followed by a suite or an inline body, and
// the clauses that continue it.
func (tb *treeBuilder) header(it *item, text string, col int, lead []pytree.NodeID) (pytree.NodeID, error) {
	kw := strings.TrimSuffix(firstWord(text), ":")
	children := append([]pytree.NodeID(nil), lead...)
	parts, err := tb.clause(it, text, col)
	if err != nil {
		return pytree.NoNode, err
	}
	children = append(children, parts...)
	for _, c := range it.clauses {
		parts, err := tb.clause(c, c.text, c.col)
		if err != nil {
			return pytree.NoNode, err
		}
		children = append(children, parts...)
	}
	sym := kw + "_stmt"
	switch kw {
	case "def":
		sym = pytree.SymFuncDef
	case "class":
		sym = pytree.SymClassDef
	}
	if pytree.ClassifySymbol(sym) == pytree.KindComposite {
		return pytree.NoNode, fmt.Errorf("sketch line %d: unsupported block %q", it.line, kw)
	}
	return tb.b.Node(sym, children...), nil
}

func (tb *treeBuilder) clause(it *item, text string, col int) ([]pytree.NodeID, error) {
	head := strings.TrimSuffix(text, ":")
	kw, rest, _ := strings.Cut(head, " ")
	parts := []pytree.NodeID{tb.b.Leaf(pytree.TokName, kw, it.line, col)}
	if rest = strings.TrimSpace(rest); rest != "" {
		restCol := col + len(kw) + 1
		if kw == "def" {
			parts = append(parts, tb.signature(rest, it.line, restCol)...)
		} else {
			parts = append(parts, tb.b.Leaf(pytree.TokName, rest, it.line, restCol))
		}
	}
	parts = append(parts, tb.b.Leaf(pytree.TokOp, ":", it.line, col+len(head)))
	if it.inline != "" {
		parts = append(parts, tb.simpleAt(it.inline, it.line, col+len(text)+1))
		return parts, nil
	}
	body, err := tb.items(it.body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("sketch line %d: empty block", it.line)
	}
	first := it.body[0]
	last := it.body[len(it.body)-1]
	suite := []pytree.NodeID{
		tb.b.Leaf(pytree.TokNewline, "\n", it.line, col+len(text)),
		tb.b.Leaf(pytree.TokIndent, strings.Repeat(" ", first.col), first.line, 0),
	}
	suite = append(suite, body...)
	suite = append(suite, tb.b.Leaf(pytree.TokDedent, "", endLine(last), 0))
	parts = append(parts, tb.b.Node(pytree.SymSuite, suite...))
	return parts, nil
}

// signature splits "f(a, b)" into the name and a parameters node.
func (tb *treeBuilder) signature(rest string, line, col int) []pytree.NodeID {
	name, params, ok := strings.Cut(rest, "(")
	out := []pytree.NodeID{tb.b.Leaf(pytree.TokName, name, line, col)}
	if !ok {
		return out
	}
	pcol := col + len(name)
	inner := strings.TrimSuffix(params, ")")
	children := []pytree.NodeID{tb.b.Leaf(pytree.TokOp, "(", line, pcol)}
	if inner != "" {
		children = append(children, tb.b.Leaf(pytree.TokName, inner, line, pcol+1))
	}
	children = append(children, tb.b.Leaf(pytree.TokOp, ")", line, pcol+1+len(inner)))
	return append(out, tb.b.Node(pytree.SymParameters, children...))
}

func endLine(it *item) int {
	line := it.line
	if it.endLine > line {
		line = it.endLine
	}
	if n := len(it.clauses); n > 0 {
		return endLine(it.clauses[n-1])
	}
	if n := len(it.body); n > 0 {
		return endLine(it.body[n-1])
	}
	return line
}

func firstWord(text string) string {
	word, _, _ := strings.Cut(text, " ")
	return word
}
