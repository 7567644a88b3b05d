package style

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 256

type ResolverOptions struct {
	// Path forces a style file and disables discovery.
	Path string
	// Env defaults to os.LookupEnv.
	Env EnvFunc
	// CacheSize bounds the per-directory cache.
	CacheSize int
}

// Resolver resolves styles for directories: explicit file or discovered
// blanklines.toml, then environment overrides. Results are cached per
// directory; Resolve is safe for concurrent use.
type Resolver struct {
	path  string
	env   EnvFunc
	cache *lru.Cache[string, Style]
}

func NewResolver(opts ResolverOptions) (*Resolver, error) {
	env := opts.Env
	if env == nil {
		env = os.LookupEnv
	}
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		if v, ok := env(EnvStyleFile); ok {
			path = strings.TrimSpace(v)
		}
	}
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, Style](size)
	if err != nil {
		return nil, err
	}
	return &Resolver{path: path, env: env, cache: cache}, nil
}

// Resolve returns the style governing files in dir.
func (r *Resolver) Resolve(dir string) (Style, error) {
	key := r.path
	if key == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return Style{}, fmt.Errorf("failed to resolve %q: %w", dir, err)
		}
		key = abs
	}
	if s, ok := r.cache.Get(key); ok {
		return s, nil
	}

	s := Default()
	file := r.path
	if file == "" {
		found, ok, err := FindFile(key)
		if err != nil {
			return Style{}, err
		}
		if ok {
			file = found
		}
	}
	if file != "" {
		loaded, err := LoadFile(file)
		if err != nil {
			return Style{}, err
		}
		s = loaded
	}
	s, err := ApplyEnv(s, r.env)
	if err != nil {
		return Style{}, err
	}
	r.cache.Add(key, s)
	return s, nil
}

// Len returns the number of cached entries.
func (r *Resolver) Len() int {
	return r.cache.Len()
}
