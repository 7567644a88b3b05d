// Package testkit builds lib2to3-shaped syntax trees from short source
// outlines and checks annotation invariants. It is used by tests only.
package testkit

import (
	"fmt"
	"strings"

	"blanklines/internal/pytree"
)

type itemKind uint8

const (
	itemStmt itemKind = iota
	itemComment
	itemDecorator
	itemHeader // line ending a block header with ':'
)

type item struct {
	kind    itemKind
	line    int
	col     int
	text    string
	endLine int // last line of a merged comment block
	inline  string
	body    []*item
	clauses []*item
}

func (it *item) keyword() string {
	word, _, _ := strings.Cut(it.text, " ")
	word, _, _ = strings.Cut(word, "(")
	return strings.TrimSuffix(word, ":")
}

func (it *item) isDefinition() bool {
	switch it.keyword() {
	case "def", "class":
		return true
	case "async":
		return strings.HasPrefix(strings.TrimPrefix(it.text, "async "), "def ")
	}
	return false
}

var clauseKeywords = map[string]bool{"elif": true, "else": true, "except": true, "finally": true}

type SketchOption func(*sketchConfig)

type sketchConfig struct {
	mergeComments bool
}

// MergeComments folds consecutive comment lines of one column into a
// single multi-line comment leaf.
func MergeComments() SketchOption {
	return func(c *sketchConfig) { c.mergeComments = true }
}

type block struct {
	indent int
	items  *[]*item
}

// Sketch turns indentation-structured source into a tree. Comments ahead
// of an undecorated class or def become its leading children; comments
// ahead of a dedent stay in the closed block when they are indented at
// least as deep as it.
func Sketch(src string, opts ...SketchOption) (*pytree.Tree, error) {
	var cfg sketchConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	lines := strings.Split(src, "\n")
	var root []*item
	stack := []*block{{indent: 0, items: &root}}
	var pending []*item
	var open *item
	lastLine := 0

	for i, raw := range lines {
		lineNo := i + 1
		if strings.Contains(raw, "\t") {
			return nil, fmt.Errorf("sketch line %d: tabs are not supported", lineNo)
		}
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		lastLine = lineNo
		col := len(raw) - len(strings.TrimLeft(raw, " "))
		if strings.HasPrefix(text, "#") {
			if n := len(pending); cfg.mergeComments && n > 0 &&
				pending[n-1].col == col && pending[n-1].endLine == lineNo-1 {
				pending[n-1].text += "\n" + text
				pending[n-1].endLine = lineNo
				continue
			}
			pending = append(pending, &item{kind: itemComment, line: lineNo, endLine: lineNo, col: col, text: text})
			continue
		}

		var popped []*block
		if open != nil {
			top := stack[len(stack)-1]
			if col <= top.indent {
				return nil, fmt.Errorf("sketch line %d: expected an indented block", lineNo)
			}
			stack = append(stack, &block{indent: col, items: lastBody(open)})
			open = nil
		} else {
			for len(stack) > 1 && stack[len(stack)-1].indent > col {
				popped = append(popped, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if stack[len(stack)-1].indent != col {
				return nil, fmt.Errorf("sketch line %d: unindent does not match any outer level", lineNo)
			}
		}
		top := stack[len(stack)-1]
		flushComments(pending, popped, top)
		pending = nil

		it := newItem(text, lineNo, col)
		if it.kind == itemHeader && clauseKeywords[it.keyword()] {
			if err := attachClause(top, it); err != nil {
				return nil, fmt.Errorf("sketch line %d: %w", lineNo, err)
			}
		} else {
			*top.items = append(*top.items, it)
		}
		if it.kind == itemHeader && it.inline == "" {
			open = it
		}
	}
	if open != nil {
		return nil, fmt.Errorf("sketch line %d: block header without body", open.line)
	}
	var popped []*block
	for len(stack) > 1 {
		popped = append(popped, stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}
	flushComments(pending, popped, stack[0])

	b := &treeBuilder{b: pytree.NewBuilder(uint(len(lines) * 4))}
	nodes, err := b.items(root)
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, b.b.Leaf(pytree.TokEndMarker, "", lastLine+1, 0))
	return b.b.Finish(b.b.Node(pytree.SymFileInput, nodes...)), nil
}

// MustSketch is Sketch for sources known to be well formed.
func MustSketch(src string, opts ...SketchOption) *pytree.Tree {
	t, err := Sketch(src, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

func lastBody(header *item) *[]*item {
	if n := len(header.clauses); n > 0 {
		return &header.clauses[n-1].body
	}
	return &header.body
}

func flushComments(pending []*item, popped []*block, top *block) {
	for _, c := range pending {
		target := top
		if c.col > top.indent {
			for _, p := range popped {
				if p.indent <= c.col {
					target = p
					break
				}
			}
		}
		*target.items = append(*target.items, c)
	}
}

// attachClause hangs elif/else/except/finally on the compound statement
// it continues. Comments that sit between the two move into the previous
// clause's body.
func attachClause(top *block, clause *item) error {
	items := *top.items
	i := len(items) - 1
	for i >= 0 && items[i].kind == itemComment {
		i--
	}
	if i < 0 || items[i].kind != itemHeader || items[i].isDefinition() {
		return fmt.Errorf("%s without a compound statement", clause.keyword())
	}
	owner := items[i]
	body := lastBody(owner)
	*body = append(*body, items[i+1:]...)
	*top.items = items[:i+1]
	owner.clauses = append(owner.clauses, clause)
	return nil
}

func newItem(text string, line, col int) *item {
	it := &item{kind: itemStmt, line: line, col: col, text: text}
	switch {
	case strings.HasPrefix(text, "@"):
		it.kind = itemDecorator
	case strings.HasSuffix(text, ":"):
		it.kind = itemHeader
	default:
		kw := it.keyword()
		if kw == "def" || kw == "class" || kw == "async" || isCompoundKeyword(kw) || clauseKeywords[kw] {
			if head, body, ok := splitInline(text); ok {
				it.kind = itemHeader
				it.text = head
				it.inline = body
			}
		}
	}
	return it
}

func isCompoundKeyword(kw string) bool {
	switch kw {
	case "if", "while", "for", "try", "with":
		return true
	}
	return false
}

// splitInline splits "def f(): pass" into "def f():" and "pass".
func splitInline(text string) (head, body string, ok bool) {
	depth := 0
	for i, r := range text {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ':':
			if depth == 0 && i+1 < len(text) {
				body = strings.TrimSpace(text[i+1:])
				if body == "" {
					return "", "", false
				}
				return text[:i+1], body, true
			}
		}
	}
	return "", "", false
}
