package pytree

import (
	"testing"

	"blanklines/internal/diag"
)

func validateCodes(t *testing.T, tr *Tree) []diag.Code {
	t.Helper()
	bag := diag.NewBag(32)
	Validate(tr, diag.BagReporter{Bag: bag})
	codes := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	return codes
}

func hasCode(codes []diag.Code, want diag.Code) bool {
	for _, c := range codes {
		if c == want {
			return true
		}
	}
	return false
}

func TestValidateAcceptsWellFormedTree(t *testing.T) {
	s := buildSample(t)
	if codes := validateCodes(t, s.tree); len(codes) != 0 {
		t.Fatalf("unexpected diagnostics: %v", codes)
	}
}

func TestValidateReportsViolations(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder) NodeID
		want  diag.Code
	}{
		{
			name: "empty composite",
			build: func(b *Builder) NodeID {
				return b.Node(SymFileInput, b.Node(SymSuite))
			},
			want: diag.TreeEmptyComposite,
		},
		{
			name: "decorator without definition",
			build: func(b *Builder) NodeID {
				dec := b.Node(SymDecorator, b.Leaf(TokOp, "@", 1, 0), b.Leaf(TokName, "d", 1, 1))
				return b.Node(SymFileInput, dec)
			},
			want: diag.TreeDecoratorNoTarget,
		},
		{
			name: "async without unit",
			build: func(b *Builder) NodeID {
				stmt := b.Node(SymAsyncStmt, b.Leaf(TokAsync, "async", 1, 0), b.Leaf(TokName, "x", 1, 6))
				return b.Node(SymFileInput, stmt)
			},
			want: diag.TreeAsyncNoTarget,
		},
		{
			name: "definition of comments only",
			build: func(b *Builder) NodeID {
				c := b.Node(SymSimpleStmt, b.Leaf(TokComment, "# x", 1, 0), b.Leaf(TokNewline, "\n", 1, 3))
				return b.Node(SymFileInput, b.Node(SymFuncDef, c))
			},
			want: diag.TreeDefinitionNoKeyword,
		},
		{
			name: "bad position",
			build: func(b *Builder) NodeID {
				return b.Node(SymFileInput, b.Leaf(TokName, "x", 0, 0))
			},
			want: diag.TreeBadPosition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(0)
			tr := b.Finish(tt.build(b))
			codes := validateCodes(t, tr)
			if !hasCode(codes, tt.want) {
				t.Fatalf("codes = %v, want %v", codes, tt.want)
			}
		})
	}
}

func TestValidateDetectsBrokenParentLink(t *testing.T) {
	s := buildSample(t)
	s.tree.nodes.Get(uint32(s.defKw)).parent = s.class
	if !hasCode(validateCodes(t, s.tree), diag.TreeParentMismatch) {
		t.Fatalf("expected parent mismatch")
	}
}

func TestLeadingComments(t *testing.T) {
	b := NewBuilder(0)
	c1 := b.Node(SymSimpleStmt, b.Leaf(TokComment, "# a", 1, 0), b.Leaf(TokNewline, "\n", 1, 3))
	c2 := b.Node(SymSimpleStmt, b.Leaf(TokComment, "# b", 2, 0), b.Leaf(TokNewline, "\n", 2, 3))
	fn := b.Node(SymFuncDef, c1, c2, b.Leaf(TokName, "def", 3, 0), b.Leaf(TokName, "f", 3, 4))
	tr := b.Finish(b.Node(SymFileInput, fn))
	got := tr.LeadingComments(fn)
	if len(got) != 2 || got[0] != c1 || got[1] != c2 {
		t.Fatalf("LeadingComments = %v", got)
	}
}
