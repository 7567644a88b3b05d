package driver

import (
	"context"
	"errors"
	"fmt"
	"os"

	"blanklines/internal/diag"
	"blanklines/internal/format"
	"blanklines/internal/pipeline"
	"blanklines/internal/source"
)

// FormatOptions configures FormatPaths.
type FormatOptions struct {
	Options
	// Check reports what would change without writing.
	Check bool
	// Stdout returns the rendered sources instead of writing them.
	Stdout bool
}

// FormatResult captures the result of formatting one document's source.
type FormatResult struct {
	Path   string
	Source string
	// Changed reports whether the rendered source differs from disk.
	Changed bool
	// Lines lists the source lines whose blank run was rewritten.
	Lines     []int
	Formatted []byte
	Bag       *diag.Bag
	Timings   pipeline.Timings
	Err       error
}

// FormatPaths applies blank line annotations to the sources named by the
// tree documents under paths. With Check, files are not modified and
// Changed says whether they would be. With Stdout, the rendered content is
// returned in the results without touching files on disk.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := CollectDocuments(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("format: %w", ErrNoDocuments)
	}

	r, span, err := newRun(ctx, "fmt", opts.Options)
	if err != nil {
		return nil, err
	}
	results := make([]FormatResult, len(files))
	err = r.forEach(ctx, files, func(_ context.Context, i int, path string) {
		f := r.startFile(path)
		res, final := formatFile(f, opts)
		res.Timings = f.timings
		f.finish(final, res.Err)
		results[i] = res
	})
	span.End(fmt.Sprintf("files=%d", len(files)))
	return results, err
}

func formatFile(f *fileRun, opts FormatOptions) (FormatResult, pipeline.Stage) {
	res := FormatResult{Path: f.path, Bag: f.bag}
	out, err := f.annotate()
	if err != nil {
		res.Err = err
		return res, f.last
	}
	res.Source = out.source

	var rendered []byte
	err = f.stage(pipeline.StageRender, func() error {
		fs := source.NewFileSet()
		id, err := fs.Load(out.source)
		if err != nil {
			code := diag.IOLoadFileError
			if errors.Is(err, os.ErrNotExist) {
				code = diag.IOSourceMissing
			}
			diag.ReportError(diag.BagReporter{Bag: f.bag}, code, source.LineCol{}, err.Error())
			return fmt.Errorf("%s: source: %w", f.path, err)
		}
		sf := fs.Get(id)
		r := format.Render(sf, annotations(out.records))
		rendered = sf.Restore(r.Content)
		res.Changed = r.Changed
		res.Lines = r.Lines
		return nil
	})
	if err != nil {
		res.Err = err
		return res, pipeline.StageRender
	}

	switch {
	case opts.Stdout:
		res.Formatted = rendered
		return res, pipeline.StageWrite
	case opts.Check || !res.Changed:
		if res.Changed {
			return res, pipeline.StageWrite
		}
		return res, pipeline.StageRender
	}

	err = f.stage(pipeline.StageWrite, func() error {
		if err := writeFileAtomic(out.source, rendered); err != nil {
			diag.ReportError(diag.BagReporter{Bag: f.bag}, diag.IOWriteError, source.LineCol{}, err.Error())
			return fmt.Errorf("%s: write: %w", out.source, err)
		}
		return nil
	})
	res.Err = err
	return res, pipeline.StageWrite
}
