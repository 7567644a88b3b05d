package main

import (
	"io"

	"blanklines/internal/diag"
	"blanklines/internal/diagfmt"
)

// printDiagnostics writes every non-empty bag to w in document order.
func printDiagnostics(w io.Writer, paths []string, bags map[string]*diag.Bag) error {
	for _, path := range paths {
		bag := bags[path]
		if bag == nil || bag.Len() == 0 {
			continue
		}
		bag.Sort()
		bag.Dedup()
		if err := diagfmt.Pretty(w, path, bag, nil, diagfmt.PrettyOpts{Color: useColor(), ShowNotes: true}); err != nil {
			return err
		}
	}
	return nil
}
