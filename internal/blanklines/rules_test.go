package blanklines

import (
	"testing"

	"blanklines/internal/pytree"
	"blanklines/internal/testkit"
)

func findFuncs(tr *pytree.Tree) []pytree.NodeID {
	var out []pytree.NodeID
	tr.Walk(tr.Root(), func(id pytree.NodeID) bool {
		if tr.Kind(id) == pytree.KindFuncDef {
			out = append(out, id)
		}
		return true
	})
	return out
}

func TestRequiredBlankLines(t *testing.T) {
	tr := testkit.MustSketch(`def top():
    pass
class A:
    def f(self):
        pass
    def g(self):
        pass
class B:
    def h(self):
        pass
`)
	funcs := findFuncs(tr)
	top, f, g, h := funcs[0], funcs[1], funcs[2], funcs[3]
	cfg := styleOf(2, 0)

	tests := []struct {
		name string
		st   State
		node pytree.NodeID
		want Decision
	}{
		{"after decorator", State{LastWasDecorator: true}, top, Decision{pytree.NoBlankLines, RuleAfterDecorator}},
		{"top level", State{}, top, Decision{pytree.TwoBlankLines, RuleTopLevel}},
		{"indented is not top level", State{}, g, Decision{pytree.NoBlankLines, RuleNone}},
		{"nested depth is not top level", State{FunctionLevel: 1}, top, Decision{pytree.NoBlankLines, RuleNone}},
		{"same class", State{ClassLevel: 1, PrevStmt: f}, g, Decision{pytree.OneBlankLine, RuleSameClass}},
		{"other class", State{ClassLevel: 1, PrevStmt: f}, h, Decision{pytree.NoBlankLines, RuleNone}},
		{"previous is not a method", State{ClassLevel: 1, PrevStmt: top}, g, Decision{pytree.NoBlankLines, RuleNone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequiredBlankLines(tt.st, cfg, tr, tt.node); got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTopLevelColumnOfAsyncUnit(t *testing.T) {
	tr := testkit.MustSketch("async def f():\n    pass\n")
	fn := findFuncs(tr)[0]
	if !startsInZerothColumn(tr, fn) {
		t.Fatalf("async function at column 0 must count as top level")
	}
	if !startsInZerothColumn(tr, tr.AsyncUnit(fn)) {
		t.Fatalf("async unit at column 0 must count as top level")
	}
	if methodOf(tr, tr.AsyncUnit(fn)) != fn {
		t.Fatalf("async unit resolves to its function")
	}
}

func TestStateTransitionsCopy(t *testing.T) {
	s := State{}
	next := s.enterClass().enterFunction().withComment(4).withDecorator(true)
	if s != (State{}) {
		t.Fatalf("transition mutated the receiver: %+v", s)
	}
	if next.TopLevel() || next.LastCommentLine != 4 || !next.LastWasDecorator {
		t.Fatalf("unexpected state %+v", next)
	}
	if back := next.leaveFunction().leaveClass(); !back.TopLevel() {
		t.Fatalf("depths did not unwind: %+v", back)
	}
}

func TestRuleNames(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Rules() {
		name := r.String()
		if name == "" || name == "unknown" || seen[name] {
			t.Fatalf("bad rule name %q for %d", name, r)
		}
		seen[name] = true
	}
}
