package pytree

import "strings"

// NodeID addresses a node inside a Tree's arena.
type NodeID uint32

// NoNode is the absent node.
const NoNode NodeID = 0

type node struct {
	kind     Kind
	symbol   string // grammar symbol for composites, token name for leaves
	value    string
	line     int
	column   int
	parent   NodeID
	index    int // position within parent's children
	children []NodeID
	newlines Newlines
}

// Tree is a finished syntax tree. Structure is immutable; only the
// Newlines annotations change.
type Tree struct {
	nodes *Arena[node]
	root  NodeID
}

func (t *Tree) get(id NodeID) *node {
	if t == nil {
		return nil
	}
	return t.nodes.Get(uint32(id))
}

func (t *Tree) must(id NodeID) *node {
	n := t.get(id)
	if n == nil {
		panic(Invariantf(id, 0, "node %d does not exist", id))
	}
	return n
}

func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes.Slice())
}

func (t *Tree) Kind(id NodeID) Kind {
	if n := t.get(id); n != nil {
		return n.kind
	}
	return KindInvalid
}

// Symbol returns the grammar symbol of a composite or the token name of a leaf.
func (t *Tree) Symbol(id NodeID) string {
	if n := t.get(id); n != nil {
		return n.symbol
	}
	return ""
}

// Value returns the text of a leaf; composites have none.
func (t *Tree) Value(id NodeID) string {
	if n := t.get(id); n != nil {
		return n.value
	}
	return ""
}

func (t *Tree) Line(id NodeID) int {
	if n := t.get(id); n != nil {
		return n.line
	}
	return 0
}

func (t *Tree) Column(id NodeID) int {
	if n := t.get(id); n != nil {
		return n.column
	}
	return 0
}

// EndLine returns the last physical line a node occupies. A comment leaf
// holding a merged block of comments ends on line + its newline count;
// a composite ends where its last leaf ends.
func (t *Tree) EndLine(id NodeID) int {
	n := t.get(id)
	if n == nil {
		return 0
	}
	if !n.kind.IsLeaf() {
		if last := t.LastLeaf(id); last != NoNode {
			return t.EndLine(last)
		}
		return n.line
	}
	if n.kind == KindComment {
		return n.line + strings.Count(strings.TrimRight(n.value, "\n"), "\n")
	}
	return n.line
}

func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.get(id); n != nil {
		return n.parent
	}
	return NoNode
}

// Children returns the ordered children; callers must not modify the slice.
func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.get(id); n != nil {
		return n.children
	}
	return nil
}

// Child returns the i-th child or NoNode when out of range.
func (t *Tree) Child(id NodeID, i int) NodeID {
	children := t.Children(id)
	if i < 0 || i >= len(children) {
		return NoNode
	}
	return children[i]
}

// Walk visits the subtree rooted at id in pre-order. Returning false from
// fn skips the node's children.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if t.get(id) == nil {
		return
	}
	if !fn(id) {
		return
	}
	for _, child := range t.Children(id) {
		t.Walk(child, fn)
	}
}

// SetNewlines stamps the annotation of id.
func (t *Tree) SetNewlines(id NodeID, n Newlines) {
	t.must(id).newlines = n
}

func (t *Tree) Newlines(id NodeID) Newlines {
	if n := t.get(id); n != nil {
		return n.newlines
	}
	return Unset
}

// ClearNewlines resets the annotation of id to Unset.
func (t *Tree) ClearNewlines(id NodeID) {
	t.must(id).newlines = Unset
}

// ResetAnnotations clears every annotation in the tree.
func (t *Tree) ResetAnnotations() {
	if t == nil {
		return
	}
	data := t.nodes.Slice()
	for i := range data {
		data[i].newlines = Unset
	}
}

// Annotations returns every stamped node in pre-order.
func (t *Tree) Annotations() []Annotation {
	var out []Annotation
	t.Walk(t.root, func(id NodeID) bool {
		n := t.get(id)
		if n.newlines.IsSet() {
			out = append(out, Annotation{
				Node:     id,
				Line:     n.line,
				Column:   n.column,
				Newlines: n.newlines,
			})
		}
		return true
	})
	return out
}
