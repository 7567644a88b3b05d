package diagfmt

import (
	"encoding/json"
	"io"

	"blanklines/internal/diag"
)

// LocationJSON is a position inside a document.
type LocationJSON struct {
	File string `json:"file"`
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of the JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// BuildDiagnosticsOutput converts bags keyed by document path, in the
// order of paths, without serialising.
func BuildDiagnosticsOutput(paths []string, bags map[string]*diag.Bag, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0)}
	for _, path := range paths {
		bag := bags[path]
		if bag == nil {
			continue
		}
		for _, d := range bag.Items() {
			if opts.Max > 0 && len(out.Diagnostics) >= opts.Max {
				out.Count = len(out.Diagnostics)
				return out
			}
			dj := DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.Code.ID(),
				Title:    d.Code.Title(),
				Message:  d.Message,
				Location: LocationJSON{File: path, Line: d.Primary.Line, Col: d.Primary.Col},
			}
			if opts.IncludeNotes && len(d.Notes) > 0 {
				dj.Notes = make([]NoteJSON, len(d.Notes))
				for j, n := range d.Notes {
					dj.Notes[j] = NoteJSON{
						Message:  n.Msg,
						Location: LocationJSON{File: path, Line: n.Pos.Line, Col: n.Pos.Col},
					}
				}
			}
			out.Diagnostics = append(out.Diagnostics, dj)
		}
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the diagnostics of bags as an indented JSON object.
func JSON(w io.Writer, paths []string, bags map[string]*diag.Bag, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(paths, bags, opts))
}
