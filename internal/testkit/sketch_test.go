package testkit

import (
	"testing"

	"blanklines/internal/diag"
	"blanklines/internal/pytree"
)

func symbols(t *pytree.Tree, ids []pytree.NodeID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.Symbol(id))
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSketchShape(t *testing.T) {
	src := `import os
# about A
class A:
    x = 1

    @property
    @cached
    def f(self):
        return 1
    # trailing in A

async def g(): pass
if x:
    pass
else:
    y = 2
`
	tr, err := Sketch(src)
	if err != nil {
		t.Fatal(err)
	}
	bag := diag.NewBag(16)
	if !pytree.Validate(tr, diag.BagReporter{Bag: bag}) {
		t.Fatalf("sketch produced an invalid tree: %+v", bag.Items())
	}

	top := symbols(tr, tr.Children(tr.Root()))
	want := []string{"simple_stmt", "classdef", "async_stmt", "if_stmt", "ENDMARKER"}
	if !equalStrings(top, want) {
		t.Fatalf("top level = %v, want %v", top, want)
	}

	class := tr.Child(tr.Root(), 1)
	lead := tr.LeadingComments(class)
	if len(lead) != 1 || tr.Line(lead[0]) != 2 {
		t.Fatalf("class leading comments = %v", lead)
	}
	suite := tr.LastChild(class)
	body := symbols(tr, tr.Children(suite))
	wantBody := []string{"NEWLINE", "INDENT", "simple_stmt", "decorated", "simple_stmt", "DEDENT"}
	if !equalStrings(body, wantBody) {
		t.Fatalf("class body = %v, want %v", body, wantBody)
	}
	trailing := tr.Child(suite, 4)
	if !tr.IsCommentStatement(trailing) || tr.Line(trailing) != 10 {
		t.Fatalf("trailing comment not kept in the class body")
	}

	decorated := tr.Child(suite, 3)
	if got := tr.Symbol(tr.Child(decorated, 0)); got != pytree.SymDecorators {
		t.Fatalf("stacked decorators grouped as %q", got)
	}
	fn := tr.Child(decorated, 1)
	if tr.Kind(fn) != pytree.KindFuncDef || tr.Line(fn) != 8 || tr.Column(fn) != 4 {
		t.Fatalf("decorated function at %d:%d", tr.Line(fn), tr.Column(fn))
	}

	async := tr.Child(tr.Root(), 2)
	g := tr.LastChild(async)
	if !tr.IsAsyncFunction(g) || tr.Column(g) != 6 {
		t.Fatalf("async function not recognised at column 6")
	}

	ifStmt := tr.Child(tr.Root(), 3)
	clauses := symbols(tr, tr.Children(ifStmt))
	wantClauses := []string{"NAME", "NAME", "OP", "suite", "NAME", "OP", "suite"}
	if !equalStrings(clauses, wantClauses) {
		t.Fatalf("if statement = %v, want %v", clauses, wantClauses)
	}
}

func TestSketchCommentBeforeDedentGoesOut(t *testing.T) {
	src := `def f():
    x = 1
# about g
def g():
    pass
`
	tr := MustSketch(src)
	g := tr.Child(tr.Root(), 1)
	if tr.Kind(g) != pytree.KindFuncDef || len(tr.LeadingComments(g)) != 1 {
		t.Fatalf("comment at column 0 should lead g")
	}
}

func TestSketchMergeComments(t *testing.T) {
	src := `# one
# two

# three
x = 1
`
	tr := MustSketch(src, MergeComments())
	first := tr.Child(tr.Child(tr.Root(), 0), 0)
	if tr.Value(first) != "# one\n# two" || tr.EndLine(first) != 2 {
		t.Fatalf("merged comment = %q ending %d", tr.Value(first), tr.EndLine(first))
	}
	if n := len(tr.Children(tr.Root())); n != 4 {
		t.Fatalf("got %d top-level children, want 4", n)
	}
}

func TestSketchErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing body", "def f():\n"},
		{"bad dedent", "if x:\n    a\n  b\n"},
		{"dangling decorator", "@d\nx = 1\n"},
		{"orphan else", "x = 1\nelse:\n    y\n"},
		{"tabs", "if x:\n\ty\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Sketch(tt.src); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}
