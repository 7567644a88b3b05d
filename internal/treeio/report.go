package treeio

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"blanklines/internal/pytree"
)

// AnnotationRecord is one stamped token.
type AnnotationRecord struct {
	Line       int    `json:"line" msgpack:"line"`
	Col        int    `json:"col" msgpack:"col"`
	Token      string `json:"token" msgpack:"token"`
	Newlines   int    `json:"newlines" msgpack:"newlines"`
	BlankLines int    `json:"blank_lines" msgpack:"blank_lines"`
	Rule       string `json:"rule,omitempty" msgpack:"rule,omitempty"`
}

// AnnotationReport groups the records of one document.
type AnnotationReport struct {
	Document    string             `json:"document" msgpack:"document"`
	Source      string             `json:"source" msgpack:"source"`
	Annotations []AnnotationRecord `json:"annotations" msgpack:"annotations"`
}

// Records lists the annotations of t in tree order. rules, when non-nil,
// names the rule that produced each stamp.
func Records(t *pytree.Tree, rules map[pytree.NodeID]string) []AnnotationRecord {
	anns := t.Annotations()
	out := make([]AnnotationRecord, 0, len(anns))
	for _, a := range anns {
		out = append(out, AnnotationRecord{
			Line:       a.Line,
			Col:        a.Column,
			Token:      firstLine(t.Value(a.Node)),
			Newlines:   int(a.Newlines),
			BlankLines: a.Newlines.BlankLines(),
			Rule:       rules[a.Node],
		})
	}
	return out
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// ReportFormat selects the output of WriteReports.
type ReportFormat uint8

const (
	ReportText ReportFormat = iota
	ReportJSON
	ReportMsgpack
)

func ParseReportFormat(s string) (ReportFormat, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return ReportText, nil
	case "json":
		return ReportJSON, nil
	case "msgpack":
		return ReportMsgpack, nil
	}
	return ReportText, fmt.Errorf("unsupported format %q (expected text|json|msgpack)", s)
}

// WriteReports renders reports in order.
func WriteReports(w io.Writer, reports []AnnotationReport, format ReportFormat) error {
	switch format {
	case ReportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case ReportMsgpack:
		return msgpack.NewEncoder(w).Encode(reports)
	case ReportText:
		for _, r := range reports {
			for _, a := range r.Annotations {
				if _, err := fmt.Fprintf(w, "%s:%d:%d: %s blank_lines=%d", r.Source, a.Line, a.Col, a.Token, a.BlankLines); err != nil {
					return err
				}
				if a.Rule != "" {
					if _, err := fmt.Fprintf(w, " rule=%s", a.Rule); err != nil {
						return err
					}
				}
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported report format %d", format)
}
