package format

import (
	"slices"
	"testing"

	"blanklines/internal/pytree"
	"blanklines/internal/source"
)

func virtual(t *testing.T, content string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.py", []byte(content)))
}

func ann(line, col int, n pytree.Newlines) pytree.Annotation {
	return pytree.Annotation{Line: line, Column: col, Newlines: n}
}

func TestRender(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		anns    []pytree.Annotation
		want    string
		changed []int
	}{
		{
			name:    "adds blank lines",
			src:     "import os\nclass A:\n    pass\n",
			anns:    []pytree.Annotation{ann(2, 0, pytree.TwoBlankLines)},
			want:    "import os\n\n\nclass A:\n    pass\n",
			changed: []int{2},
		},
		{
			name:    "removes blank lines",
			src:     "x = 1\n\n\n\n\ny = 2\n",
			anns:    []pytree.Annotation{ann(6, 0, pytree.NoBlankLines)},
			want:    "x = 1\ny = 2\n",
			changed: []int{6},
		},
		{
			name: "column must match first token",
			src:  "x = 1\ny = 2\n",
			anns: []pytree.Annotation{ann(2, 4, pytree.TwoBlankLines)},
			want: "x = 1\ny = 2\n",
		},
		{
			name: "first line untouched",
			src:  "\n\nx = 1\n",
			anns: []pytree.Annotation{ann(3, 0, pytree.NoBlankLines)},
			want: "\n\nx = 1\n",
		},
		{
			name: "comment block is a barrier",
			src:  "x = 1\n\n# about f\ndef f():\n    pass\n",
			anns: []pytree.Annotation{ann(4, 0, pytree.NoBlankLines)},
			want: "x = 1\n\n# about f\ndef f():\n    pass\n",
		},
		{
			name:    "indented method",
			src:     "class A:\n    def f(self):\n        pass\n    def g(self):\n        pass\n",
			anns:    []pytree.Annotation{ann(2, 4, pytree.NoBlankLines), ann(4, 4, pytree.OneBlankLine)},
			want:    "class A:\n    def f(self):\n        pass\n\n    def g(self):\n        pass\n",
			changed: []int{4},
		},
		{
			name: "kept blank lines are copied verbatim",
			src:  "a\n  \nb\n",
			anns: []pytree.Annotation{ann(3, 0, pytree.OneBlankLine)},
			want: "a\n  \nb\n",
		},
		{
			name: "unset annotation ignored",
			src:  "a\n\n\nb",
			anns: []pytree.Annotation{ann(4, 0, pytree.Unset)},
			want: "a\n\n\nb",
		},
		{
			name:    "missing final newline",
			src:     "a\nb",
			anns:    []pytree.Annotation{ann(2, 0, pytree.OneBlankLine)},
			want:    "a\n\nb",
			changed: []int{2},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sf := virtual(t, tc.src)
			res := Render(sf, tc.anns)
			if got := string(res.Content); got != tc.want {
				t.Fatalf("content = %q, want %q", got, tc.want)
			}
			if res.Changed != (tc.want != tc.src) {
				t.Fatalf("changed = %v", res.Changed)
			}
			if !slices.Equal(res.Lines, tc.changed) {
				t.Fatalf("lines = %v, want %v", res.Lines, tc.changed)
			}
		})
	}
}

func TestApplyBlankLinesIdempotent(t *testing.T) {
	src := "import os\nclass A:\n    pass\n"
	anns := []pytree.Annotation{ann(2, 0, pytree.TwoBlankLines)}
	once := ApplyBlankLines(virtual(t, src), anns)
	shifted := []pytree.Annotation{ann(4, 0, pytree.TwoBlankLines)}
	twice := ApplyBlankLines(virtual(t, string(once)), shifted)
	if string(once) != string(twice) {
		t.Fatalf("second pass changed output:\n%q\n%q", once, twice)
	}
}
