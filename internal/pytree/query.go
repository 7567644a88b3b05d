package pytree

// FirstLeaf returns the leftmost leaf of the subtree, or NoNode when the
// subtree has no leaves.
func (t *Tree) FirstLeaf(id NodeID) NodeID {
	for {
		n := t.get(id)
		if n == nil {
			return NoNode
		}
		if n.kind.IsLeaf() {
			return id
		}
		if len(n.children) == 0 {
			return NoNode
		}
		id = n.children[0]
	}
}

// LastLeaf returns the rightmost leaf of the subtree.
func (t *Tree) LastLeaf(id NodeID) NodeID {
	for {
		n := t.get(id)
		if n == nil {
			return NoNode
		}
		if n.kind.IsLeaf() {
			return id
		}
		if len(n.children) == 0 {
			return NoNode
		}
		id = n.children[len(n.children)-1]
	}
}

func (t *Tree) PrevSibling(id NodeID) NodeID {
	n := t.get(id)
	if n == nil || n.parent == NoNode {
		return NoNode
	}
	return t.Child(n.parent, n.index-1)
}

func (t *Tree) NextSibling(id NodeID) NodeID {
	n := t.get(id)
	if n == nil || n.parent == NoNode {
		return NoNode
	}
	return t.Child(n.parent, n.index+1)
}

// IsCommentStatement reports whether id is a standalone comment: a
// simple_stmt whose first child is a comment leaf.
func (t *Tree) IsCommentStatement(id NodeID) bool {
	return t.Kind(id) == KindSimpleStmt && t.Kind(t.Child(id, 0)) == KindComment
}

// IsAsyncFunction reports whether id is a function definition preceded by
// the async marker.
func (t *Tree) IsAsyncFunction(id NodeID) bool {
	return t.Kind(id) == KindFuncDef && t.Kind(t.PrevSibling(id)) == KindAsync
}

// AsyncUnit returns the node grouping the async marker with its function
// (async_funcdef or async_stmt), or NoNode when id is not async.
func (t *Tree) AsyncUnit(id NodeID) NodeID {
	if !t.IsAsyncFunction(id) {
		return NoNode
	}
	return t.Parent(id)
}

// AsyncKeyword returns the async marker preceding an async function.
func (t *Tree) AsyncKeyword(id NodeID) NodeID {
	if !t.IsAsyncFunction(id) {
		return NoNode
	}
	return t.PrevSibling(id)
}

// EnclosingFunc returns the nearest ancestor-or-self function definition.
func (t *Tree) EnclosingFunc(id NodeID) NodeID {
	return t.enclosing(id, KindFuncDef)
}

// EnclosingClass returns the nearest ancestor-or-self class definition.
func (t *Tree) EnclosingClass(id NodeID) NodeID {
	return t.enclosing(id, KindClassDef)
}

func (t *Tree) enclosing(id NodeID, kind Kind) NodeID {
	for id != NoNode {
		n := t.get(id)
		if n == nil {
			return NoNode
		}
		if n.kind == kind {
			return id
		}
		id = n.parent
	}
	return NoNode
}

// DecoratedTarget returns the definition a decorator binds to. The
// decorator sits in a decorated node, directly or through a decorators
// group; the definition is the last child of that node, with an
// async_funcdef unwrapped to its function.
func (t *Tree) DecoratedTarget(id NodeID) NodeID {
	if t.Kind(id) != KindDecorator {
		return NoNode
	}
	decorated := t.Parent(id)
	if t.Symbol(decorated) == SymDecorators {
		decorated = t.Parent(decorated)
	}
	if t.Symbol(decorated) != SymDecorated {
		return NoNode
	}
	children := t.Children(decorated)
	target := children[len(children)-1]
	if t.Symbol(target) == SymAsyncFuncDef {
		target = t.LastChild(target)
	}
	if !t.Kind(target).IsDefinition() {
		return NoNode
	}
	return target
}

// LastChild returns the final child or NoNode.
func (t *Tree) LastChild(id NodeID) NodeID {
	children := t.Children(id)
	if len(children) == 0 {
		return NoNode
	}
	return children[len(children)-1]
}
