package driver

import (
	"context"
	"fmt"

	"blanklines/internal/blanklines"
	"blanklines/internal/diag"
	"blanklines/internal/pipeline"
	"blanklines/internal/style"
	"blanklines/internal/treeio"
)

// AnnotateOptions configures AnnotatePaths.
type AnnotateOptions struct {
	Options
	// Rules keeps the name of the deciding rule on every record.
	Rules bool
}

// AnnotateResult is the outcome for one document.
type AnnotateResult struct {
	Path    string
	Source  string
	Style   style.Style
	Records []treeio.AnnotationRecord
	// Stats is zero when the result came from the cache.
	Stats   blanklines.Stats
	Cached  bool
	Bag     *diag.Bag
	Timings pipeline.Timings
	Err     error
}

// Report converts the result for treeio.WriteReports.
func (r AnnotateResult) Report() treeio.AnnotationReport {
	return treeio.AnnotationReport{Document: r.Path, Source: r.Source, Annotations: r.Records}
}

// AnnotatePaths computes blank line annotations for every tree document
// under paths. Results follow the sorted document order; a failing
// document sets Err on its result and does not stop the others.
func AnnotatePaths(ctx context.Context, paths []string, opts AnnotateOptions) ([]AnnotateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := CollectDocuments(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("annotate: %w", ErrNoDocuments)
	}

	r, span, err := newRun(ctx, "annotate", opts.Options)
	if err != nil {
		return nil, err
	}
	results := make([]AnnotateResult, len(files))
	err = r.forEach(ctx, files, func(_ context.Context, i int, path string) {
		f := r.startFile(path)
		res := AnnotateResult{Path: path, Bag: f.bag}
		out, err := f.annotate()
		if err == nil {
			res.Source = out.source
			res.Style = out.style
			res.Records = out.records
			res.Stats = out.stats
			res.Cached = out.cached
			if !opts.Rules {
				stripRules(res.Records)
			}
		}
		res.Err = err
		res.Timings = f.timings
		f.finish(pipeline.StageAnnotate, err)
		results[i] = res
	})
	span.End(fmt.Sprintf("files=%d", len(files)))
	return results, err
}

func stripRules(records []treeio.AnnotationRecord) {
	for i := range records {
		records[i].Rule = ""
	}
}
