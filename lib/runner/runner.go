// Package runner lints many files concurrently.
package runner

import (
	"context"
	"log/slog"
	"os"
	"runtime"

	"github.com/vyPal/provsniff/lib/analyzer"
	"github.com/vyPal/provsniff/lib/cache"
	"golang.org/x/sync/errgroup"
)

// Factory returns a fresh analyzer. Rules keep per-file state, so every
// worker gets its own.
type Factory func() (*analyzer.Analyzer, error)

type Result struct {
	Path        string                `json:"path"`
	Diagnostics []analyzer.Diagnostic `json:"diagnostics"`
	Err         error                 `json:"-"`
	Cached      bool                  `json:"-"`
}

type Runner struct {
	Factory Factory
	Jobs    int
	// Cache may be nil.
	Cache *cache.Results
}

// Run lints paths and returns one result per path in the same order. A file
// that cannot be read is reported on its result; only a cancelled context or
// a failing factory ends the run early.
func (r *Runner) Run(ctx context.Context, paths []string) ([]Result, error) {
	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(paths) {
		jobs = len(paths)
	}

	results := make([]Result, len(paths))
	work := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(work)
		for i := range paths {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case work <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < jobs; w++ {
		g.Go(func() error {
			a, err := r.Factory()
			if err != nil {
				return err
			}
			for i := range work {
				results[i] = r.lint(a, paths[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) lint(a *analyzer.Analyzer, path string) Result {
	res := Result{Path: path}

	src, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}

	if diags, ok := r.Cache.Get(src); ok {
		slog.Debug("cache hit", "path", path)
		res.Diagnostics = diags
		res.Cached = true
		return res
	}

	f, err := a.ProcessSource(path, src)
	if err != nil {
		res.Err = err
		return res
	}
	res.Diagnostics = f.Diagnostics()
	r.Cache.Put(src, res.Diagnostics)
	slog.Debug("linted", "path", path, "diagnostics", len(res.Diagnostics))
	return res
}
