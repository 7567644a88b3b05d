package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"blanklines/internal/blanklines"
	"blanklines/internal/diag"
	"blanklines/internal/pipeline"
	"blanklines/internal/pytree"
	"blanklines/internal/source"
	"blanklines/internal/style"
	"blanklines/internal/trace"
	"blanklines/internal/treeio"
)

// run carries what the workers of one AnnotatePaths/FormatPaths call share.
type run struct {
	opts   Options
	tracer trace.Tracer
	base   string
	span   uint64
}

func newRun(ctx context.Context, name string, opts Options) (*run, *trace.Span, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, nil, err
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, name, trace.SpanFrom(ctx).ID())
	base := opts.BaseDir
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
	}
	return &run{opts: opts, tracer: tracer, base: base, span: span.ID()}, span, nil
}

func (r *run) display(path string) string {
	return pipeline.DisplayPath(path, r.base)
}

// forEach runs fn for every file with at most opts.Jobs in flight. fn
// records per-file failures itself; only cancellation stops the group.
func (r *run) forEach(ctx context.Context, files []string, fn func(ctx context.Context, i int, path string)) error {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = r.display(f)
	}
	pipeline.EmitQueued(r.opts.Progress, names)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(r.opts.Jobs, len(files)))
	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				fn(gctx, i, path)
				return nil
			}
		}(i, path))
	}
	return g.Wait()
}

// fileRun tracks one document through the stages.
type fileRun struct {
	r       *run
	path    string
	name    string
	span    *trace.Span
	bag     *diag.Bag
	timings pipeline.Timings
	last    pipeline.Stage
}

func (r *run) startFile(path string) *fileRun {
	return &fileRun{
		r:    r,
		path: path,
		name: r.display(path),
		span: trace.BeginFile(r.tracer, path, r.span),
		bag:  diag.NewBag(r.opts.MaxDiagnostics),
	}
}

func (f *fileRun) stage(stage pipeline.Stage, fn func() error) error {
	f.last = stage
	pipeline.Emit(f.r.opts.Progress, pipeline.Event{File: f.name, Stage: stage, Status: pipeline.StatusWorking})
	span := f.span.Child(trace.ScopePass, string(stage))
	start := time.Now()
	err := f.r.opts.Timer.Track(string(stage), fn)
	f.timings.Add(stage, time.Since(start))
	span.EndErr(err)
	return err
}

// finish emits the final event for the file and closes its span.
func (f *fileRun) finish(stage pipeline.Stage, err error) {
	status := pipeline.StatusDone
	if err != nil {
		status = pipeline.StatusError
		stage = f.last
	}
	pipeline.Emit(f.r.opts.Progress, pipeline.Event{
		File:    f.name,
		Stage:   stage,
		Status:  status,
		Err:     err,
		Elapsed: f.timings.Sum(pipeline.Stages()...),
	})
	f.span.EndErr(err)
}

// annotated is the outcome of the load → validate → annotate stages.
type annotated struct {
	source  string
	style   style.Style
	records []treeio.AnnotationRecord
	stats   blanklines.Stats
	stamped int
	cached  bool
}

func (f *fileRun) annotate() (*annotated, error) {
	var (
		data []byte
		doc  *treeio.Document
		out  = &annotated{}
	)
	err := f.stage(pipeline.StageLoad, func() error {
		var err error
		data, err = os.ReadFile(f.path)
		if err != nil {
			diag.ReportError(diag.BagReporter{Bag: f.bag}, diag.IOLoadFileError, source.LineCol{}, err.Error())
			return fmt.Errorf("%s: %w", f.path, err)
		}
		doc, err = treeio.DecodeFile(f.path, data)
		if err != nil {
			diag.ReportError(diag.BagReporter{Bag: f.bag}, diag.IODecodeError, source.LineCol{}, err.Error())
			return err
		}
		out.source = sourcePath(f.path, doc.Path)
		out.style, err = f.r.opts.Resolver.Resolve(filepath.Dir(out.source))
		if err != nil {
			diag.ReportError(diag.BagReporter{Bag: f.bag}, diag.StyleInvalid, source.LineCol{}, err.Error())
			return fmt.Errorf("%s: style: %w", f.path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	key := KeyFor(data, out.style)
	var payload DiskPayload
	if ok, err := f.r.opts.Cache.Get(key, &payload); err == nil && ok {
		out.records = payload.Records
		out.stamped = payload.Stamped
		out.cached = true
		f.span.Point(trace.ScopeFile, "cache-hit", "")
		return out, nil
	}

	err = f.stage(pipeline.StageValidate, func() error {
		if !pytree.Validate(doc.Tree, diag.BagReporter{Bag: f.bag}) {
			f.bag.Sort()
			return fmt.Errorf("%s: %w (%d diagnostics)", f.path, ErrInvalidTree, f.bag.Len())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = f.stage(pipeline.StageAnnotate, func() error {
		rules := make(map[pytree.NodeID]string)
		stats, err := blanklines.RunChecked(doc.Tree, out.style, blanklines.Options{
			Tracer:  f.r.tracer,
			Parent:  f.span,
			OnStamp: func(id pytree.NodeID, d blanklines.Decision) {
				rules[id] = d.Rule.String()
			},
		})
		if err != nil {
			var inv *pytree.InvariantError
			if errors.As(err, &inv) {
				diag.ReportError(diag.BagReporter{Bag: f.bag}, diag.TreeInfo, lineCol(inv.Line), inv.Msg)
			}
			return fmt.Errorf("%s: %w", f.path, err)
		}
		out.stats = stats
		out.stamped = stats.Stamped
		out.records = treeio.Records(doc.Tree, rules)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := f.r.opts.Cache.Put(key, &DiskPayload{Source: doc.Path, Stamped: out.stamped, Records: out.records}); err != nil {
		diag.ReportWarning(diag.BagReporter{Bag: f.bag}, diag.IOWriteError, source.LineCol{}, "annotation cache: "+err.Error())
	}
	return out, nil
}

func lineCol(line int) source.LineCol {
	l, err := safecast.Conv[uint32](line)
	if err != nil {
		return source.LineCol{}
	}
	return source.LineCol{Line: l}
}

// annotations converts records back into renderer input.
func annotations(records []treeio.AnnotationRecord) []pytree.Annotation {
	out := make([]pytree.Annotation, 0, len(records))
	for _, rec := range records {
		out = append(out, pytree.Annotation{
			Line:     rec.Line,
			Column:   rec.Col,
			Newlines: pytree.NewlinesFor(rec.BlankLines),
		})
	}
	return out
}
