package driver

import (
	"errors"
	"runtime"

	"blanklines/internal/observ"
	"blanklines/internal/pipeline"
	"blanklines/internal/style"
)

var (
	// ErrNoDocuments is returned when the paths hold no tree documents.
	ErrNoDocuments = errors.New("no tree documents found")
	// ErrInvalidTree marks documents rejected by validation.
	ErrInvalidTree = errors.New("invalid syntax tree")
)

// Options are shared by the annotate and fmt drivers.
type Options struct {
	// Jobs bounds concurrent documents; <= 0 means GOMAXPROCS.
	Jobs           int
	MaxDiagnostics int
	// Resolver defaults to discovery plus environment overrides.
	Resolver *style.Resolver
	// Cache, when set, reuses annotation results across runs.
	Cache    *DiskCache
	Progress pipeline.ProgressSink
	// Timer collects per-stage timings; one is created when nil.
	Timer *observ.Timer
	// BaseDir makes the file names in progress events relative.
	BaseDir string
}

func (o Options) withDefaults() (Options, error) {
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = 256
	}
	if o.Resolver == nil {
		r, err := style.NewResolver(style.ResolverOptions{})
		if err != nil {
			return o, err
		}
		o.Resolver = r
	}
	if o.Timer == nil {
		o.Timer = observ.NewTimer()
	}
	return o, nil
}
