package pytree

// Builder assembles a Tree bottom-up: leaves first, then composites that
// adopt them. Each node can be adopted once.
type Builder struct {
	nodes *Arena[node]
}

func NewBuilder(capHint uint) *Builder {
	return &Builder{nodes: NewArena[node](capHint)}
}

// Leaf adds a leaf classified by its token name.
func (b *Builder) Leaf(tok, value string, line, col int) NodeID {
	return b.LeafKind(ClassifyToken(tok), tok, value, line, col)
}

func (b *Builder) LeafKind(kind Kind, tok, value string, line, col int) NodeID {
	if !kind.IsLeaf() {
		panic(Invariantf(NoNode, line, "leaf %q built with composite kind %s", tok, kind))
	}
	return NodeID(b.nodes.Allocate(node{
		kind:   kind,
		symbol: tok,
		value:  value,
		line:   line,
		column: col,
	}))
}

// Node adds a composite classified by its grammar symbol.
func (b *Builder) Node(sym string, children ...NodeID) NodeID {
	return b.NodeKind(ClassifySymbol(sym), sym, children...)
}

func (b *Builder) NodeKind(kind Kind, sym string, children ...NodeID) NodeID {
	if kind.IsLeaf() {
		panic(Invariantf(NoNode, 0, "composite %q built with leaf kind %s", sym, kind))
	}
	id := NodeID(b.nodes.Allocate(node{
		kind:     kind,
		symbol:   sym,
		children: append([]NodeID(nil), children...),
	}))
	for i, child := range children {
		c := b.nodes.Get(uint32(child))
		if c == nil || child == id {
			panic(Invariantf(id, 0, "%s adopts unknown node %d", sym, child))
		}
		if c.parent != NoNode {
			panic(Invariantf(child, c.line, "node already owned by %d", c.parent))
		}
		c.parent = id
		c.index = i
	}
	if len(children) > 0 {
		first := b.nodes.Get(uint32(children[0]))
		n := b.nodes.Get(uint32(id))
		n.line, n.column = first.line, first.column
	}
	return id
}

// Finish seals the builder and returns the tree rooted at root.
func (b *Builder) Finish(root NodeID) *Tree {
	r := b.nodes.Get(uint32(root))
	if r == nil {
		panic(Invariantf(root, 0, "root does not exist"))
	}
	if r.parent != NoNode {
		panic(Invariantf(root, r.line, "root has parent %d", r.parent))
	}
	t := &Tree{nodes: b.nodes, root: root}
	b.nodes = NewArena[node](0)
	return t
}
