package pytree

import (
	"errors"
	"testing"
)

// class A:
//
//	@dec
//	async def f(): pass
type sample struct {
	tree                           *Tree
	class, decorator, async, fn    NodeID
	classKw, asyncKw, defKw, decAt NodeID
}

func buildSample(t *testing.T) sample {
	t.Helper()
	b := NewBuilder(0)
	var s sample
	s.classKw = b.Leaf(TokName, "class", 1, 0)
	s.decAt = b.Leaf(TokOp, "@", 2, 4)
	s.decorator = b.Node(SymDecorator, s.decAt, b.Leaf(TokName, "dec", 2, 5), b.Leaf(TokNewline, "\n", 2, 8))
	s.asyncKw = b.Leaf(TokAsync, "async", 3, 4)
	s.defKw = b.Leaf(TokName, "def", 3, 10)
	s.fn = b.Node(SymFuncDef,
		s.defKw,
		b.Leaf(TokName, "f", 3, 14),
		b.Node(SymParameters, b.Leaf(TokOp, "(", 3, 15), b.Leaf(TokOp, ")", 3, 16)),
		b.Leaf(TokOp, ":", 3, 17),
		b.Node(SymSimpleStmt, b.Node(SymPassStmt, b.Leaf(TokName, "pass", 3, 19)), b.Leaf(TokNewline, "\n", 3, 23)),
	)
	s.async = b.Node(SymAsyncFuncDef, s.asyncKw, s.fn)
	decorated := b.Node(SymDecorated, s.decorator, s.async)
	suite := b.Node(SymSuite, b.Leaf(TokNewline, "\n", 1, 8), b.Leaf(TokIndent, "    ", 2, 0), decorated, b.Leaf(TokDedent, "", 4, 0))
	s.class = b.Node(SymClassDef, s.classKw, b.Leaf(TokName, "A", 1, 6), b.Leaf(TokOp, ":", 1, 7), suite)
	root := b.Node(SymFileInput, s.class, b.Leaf(TokEndMarker, "", 4, 0))
	s.tree = b.Finish(root)
	return s
}

func TestBuilderPositionsAndParents(t *testing.T) {
	s := buildSample(t)
	tr := s.tree
	if got := tr.Kind(s.class); got != KindClassDef {
		t.Fatalf("class kind = %s", got)
	}
	if tr.Line(s.fn) != 3 || tr.Column(s.fn) != 10 {
		t.Fatalf("funcdef position = %d:%d, want 3:10", tr.Line(s.fn), tr.Column(s.fn))
	}
	if tr.Line(s.async) != 3 || tr.Column(s.async) != 4 {
		t.Fatalf("async unit position = %d:%d, want 3:4", tr.Line(s.async), tr.Column(s.async))
	}
	if tr.Parent(s.fn) != s.async || tr.Parent(tr.Root()) != NoNode {
		t.Fatalf("unexpected parent links")
	}
	if tr.Child(s.class, 99) != NoNode || tr.Child(s.class, -1) != NoNode {
		t.Fatalf("out-of-range child should be NoNode")
	}
}

func TestBuilderRejectsSecondOwner(t *testing.T) {
	b := NewBuilder(0)
	leaf := b.Leaf(TokName, "x", 1, 0)
	b.Node(SymExprStmt, leaf)
	defer func() {
		r := recover()
		err, ok := r.(error)
		var inv *InvariantError
		if !ok || !errors.As(err, &inv) {
			t.Fatalf("expected InvariantError panic, got %v", r)
		}
	}()
	b.Node(SymExprStmt, leaf)
}

func TestQueries(t *testing.T) {
	s := buildSample(t)
	tr := s.tree

	if got := tr.FirstLeaf(s.class); got != s.classKw {
		t.Errorf("FirstLeaf(class) = %d, want %d", got, s.classKw)
	}
	if got := tr.PrevSibling(s.fn); got != s.asyncKw {
		t.Errorf("PrevSibling(fn) = %d, want async keyword", got)
	}
	if got := tr.NextSibling(s.asyncKw); got != s.fn {
		t.Errorf("NextSibling(async) = %d, want fn", got)
	}
	if tr.PrevSibling(tr.Root()) != NoNode {
		t.Errorf("root has no siblings")
	}
	if !tr.IsAsyncFunction(s.fn) {
		t.Errorf("fn should be async")
	}
	if got := tr.AsyncUnit(s.fn); got != s.async {
		t.Errorf("AsyncUnit = %d, want %d", got, s.async)
	}
	if got := tr.AsyncKeyword(s.fn); got != s.asyncKw {
		t.Errorf("AsyncKeyword = %d, want %d", got, s.asyncKw)
	}
	if got := tr.EnclosingFunc(s.defKw); got != s.fn {
		t.Errorf("EnclosingFunc(def) = %d, want fn", got)
	}
	if got := tr.EnclosingFunc(s.fn); got != s.fn {
		t.Errorf("EnclosingFunc is ancestor-or-self")
	}
	if got := tr.EnclosingClass(s.fn); got != s.class {
		t.Errorf("EnclosingClass(fn) = %d, want class", got)
	}
	if got := tr.EnclosingFunc(s.classKw); got != NoNode {
		t.Errorf("class keyword has no enclosing function, got %d", got)
	}
	if got := tr.DecoratedTarget(s.decorator); got != s.fn {
		t.Errorf("DecoratedTarget = %d, want fn", got)
	}
	if tr.DecoratedTarget(s.fn) != NoNode {
		t.Errorf("DecoratedTarget of a non-decorator must be NoNode")
	}
}

func TestEndLineOfCommentBlock(t *testing.T) {
	b := NewBuilder(0)
	c := b.Leaf(TokComment, "# a\n# b\n# c", 4, 0)
	stmt := b.Node(SymSimpleStmt, c, b.Leaf(TokNewline, "\n", 6, 3))
	tr := b.Finish(b.Node(SymFileInput, stmt))
	if got := tr.EndLine(c); got != 6 {
		t.Fatalf("EndLine(comment) = %d, want 6", got)
	}
	if !tr.IsCommentStatement(stmt) {
		t.Fatalf("comment statement not recognised")
	}
	if got := tr.EndLine(stmt); got != 6 {
		t.Fatalf("EndLine(stmt) = %d, want 6", got)
	}
}

func TestAnnotations(t *testing.T) {
	s := buildSample(t)
	tr := s.tree
	tr.SetNewlines(s.decAt, OneBlankLine)
	tr.SetNewlines(s.classKw, TwoBlankLines)
	tr.SetNewlines(s.asyncKw, NoBlankLines)

	anns := tr.Annotations()
	if len(anns) != 3 {
		t.Fatalf("got %d annotations, want 3", len(anns))
	}
	wantOrder := []NodeID{s.classKw, s.decAt, s.asyncKw}
	for i, a := range anns {
		if a.Node != wantOrder[i] {
			t.Errorf("annotation %d on node %d, want %d", i, a.Node, wantOrder[i])
		}
	}
	if anns[1].Line != 2 || anns[1].Column != 4 || anns[1].Newlines.BlankLines() != 1 {
		t.Errorf("unexpected decorator annotation %+v", anns[1])
	}

	tr.ClearNewlines(s.classKw)
	if tr.Newlines(s.classKw).IsSet() {
		t.Errorf("ClearNewlines did not reset")
	}
	tr.ResetAnnotations()
	if got := len(tr.Annotations()); got != 0 {
		t.Errorf("ResetAnnotations left %d annotations", got)
	}
}

func TestNewlinesFor(t *testing.T) {
	tests := []struct {
		blank int
		want  Newlines
	}{
		{-3, NoBlankLines},
		{-1, NoBlankLines},
		{0, NoBlankLines},
		{1, OneBlankLine},
		{2, TwoBlankLines},
		{1000, 255},
	}
	for _, tt := range tests {
		if got := NewlinesFor(tt.blank); got != tt.want {
			t.Errorf("NewlinesFor(%d) = %d, want %d", tt.blank, got, tt.want)
		}
	}
	if Unset.BlankLines() != 0 || TwoBlankLines.BlankLines() != 2 {
		t.Errorf("BlankLines mapping is off")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		sym  string
		want Kind
	}{
		{SymClassDef, KindClassDef},
		{SymFuncDef, KindFuncDef},
		{SymDecorator, KindDecorator},
		{SymSimpleStmt, KindSimpleStmt},
		{SymIfStmt, KindStatement},
		{"nonlocal_stmt", KindStatement},
		{SymSuite, KindComposite},
		{SymDecorated, KindComposite},
		{"", KindInvalid},
	}
	for _, tt := range tests {
		if got := ClassifySymbol(tt.sym); got != tt.want {
			t.Errorf("ClassifySymbol(%q) = %s, want %s", tt.sym, got, tt.want)
		}
	}
	if ClassifyToken(TokComment) != KindComment || ClassifyToken(TokAsync) != KindAsync || ClassifyToken(TokName) != KindToken {
		t.Errorf("ClassifyToken mapping is off")
	}
}
