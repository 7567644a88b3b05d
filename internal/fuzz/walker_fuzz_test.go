package fuzztests

import (
	"bytes"
	"slices"
	"testing"

	"blanklines/internal/blanklines"
	"blanklines/internal/diag"
	"blanklines/internal/pytree"
	"blanklines/internal/style"
	"blanklines/internal/testkit"
	"blanklines/internal/treeio"
)

func annotate(t *testing.T, tree *pytree.Tree, cfg style.Style) []pytree.Annotation {
	t.Helper()
	tree.ResetAnnotations()
	if _, err := blanklines.RunChecked(tree, cfg, blanklines.Options{}); err != nil {
		t.Fatalf("walk failed on a validated tree: %v", err)
	}
	if err := testkit.CheckAnnotations(tree, cfg); err != nil {
		t.Fatalf("annotation invariant: %v", err)
	}
	return tree.Annotations()
}

// FuzzSketchAnnotate walks trees built from arbitrary outlines.
func FuzzSketchAnnotate(f *testing.F) {
	addOutlineSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		tree, err := testkit.Sketch(string(clamp(input)))
		if err != nil {
			return
		}
		if !pytree.Validate(tree, diag.NopReporter{}) {
			return
		}
		for _, cfg := range []style.Style{style.Default(), {TopLevel: 0, BetweenClassDefs: -1}, {TopLevel: 3, BetweenClassDefs: 2}} {
			first := annotate(t, tree, cfg)
			if _, err := blanklines.RunChecked(tree, cfg, blanklines.Options{}); err != nil {
				t.Fatalf("second walk: %v", err)
			}
			second := tree.Annotations()
			if !slices.Equal(first, second) {
				t.Fatalf("second walk changed annotations:\n%v\n%v", first, second)
			}
		}
	})
}

// FuzzDecodeDocument feeds arbitrary bytes to the JSON decoder and walks
// whatever validates.
func FuzzDecodeDocument(f *testing.F) {
	for _, s := range outlineSeeds {
		tree, err := testkit.Sketch(s)
		if err != nil {
			continue
		}
		var buf bytes.Buffer
		if err := treeio.Encode(&buf, &treeio.Document{Path: "seed.py", Tree: tree}, treeio.FormatJSON); err == nil {
			f.Add(buf.Bytes())
		}
	}
	f.Add([]byte(`{"root": {"sym": "file_input", "children": [{"sym": "suite"}]}}`))
	f.Add([]byte(`{"root": {"tok": "ASYNC", "value": "async", "line": 1}}`))
	f.Fuzz(func(t *testing.T, input []byte) {
		doc, err := treeio.Decode(clamp(input), treeio.FormatJSON)
		if err != nil {
			return
		}
		if !pytree.Validate(doc.Tree, diag.NopReporter{}) {
			return
		}
		annotate(t, doc.Tree, style.Default())
	})
}
