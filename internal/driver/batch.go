package driver

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"pepfix/internal/cache"
	"pepfix/internal/diag"
	"pepfix/internal/observ"
	"pepfix/internal/trace"
)

// DefaultExtensions are collected from directories when FixOptions.Extensions is empty.
var DefaultExtensions = []string{".py"}

// FixOptions configures FixPaths.
type FixOptions struct {
	// Check leaves files untouched; Changed tells whether they would change.
	Check bool
	// Stdout returns the output in FixResult.Formatted without writing.
	Stdout         bool
	Jobs           int
	Extensions     []string
	Options        Options
	MaxDiagnostics int
	Progress       ProgressSink
	Cache          *cache.DiskCache
}

// FixPaths fixes the given files and directories in place. Directories are
// walked recursively for files with a configured extension; explicitly named
// files are always included. Results are returned in path order. Per-file
// failures are reported in FixResult.Err; the returned error is reserved for
// collection failures, ErrNoFiles and cancellation.
func FixPaths(ctx context.Context, paths []string, opts FixOptions) ([]FixResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	batch := trace.Begin(tracer, trace.ScopeDriver, "fix-paths", 0)
	defer batch.End("")

	files, err := CollectFiles(ctx, paths, opts.Extensions)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	batch.WithExtra("files", strconv.Itoa(len(files)))

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	fingerprint := opts.Options.Fingerprint()

	// each goroutine owns results[i]
	results := make([]FixResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = FixResult{Path: path, Err: err}
				return err
			}
			results[i] = fixInPlace(gctx, path, fingerprint, opts, batch.ID())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		emit(opts.Progress, Event{Status: StatusError, Err: err})
		return results, err
	}
	emit(opts.Progress, Event{Status: StatusDone})
	return results, nil
}

func fixInPlace(ctx context.Context, path, fingerprint string, opts FixOptions, parent uint64) (result FixResult) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "fix", parent)
	result = FixResult{Path: path}
	w := fileWork{
		path:    path,
		opts:    opts.Options,
		maxDiag: opts.MaxDiagnostics,
		sink:    opts.Progress,
		tracer:  tracer,
		span:    span.ID(),
		timer:   observ.NewTimer(),
	}
	defer func() {
		result.Timing = w.timer.Report()
		status := StatusDone
		if result.Err != nil {
			status = StatusError
		}
		emit(opts.Progress, Event{File: path, Status: status, Changed: result.Changed, Err: result.Err, Elapsed: result.Timing.Total()})
		span.WithExtra("changed", strconv.FormatBool(result.Changed)).
			WithExtra("cached", strconv.FormatBool(result.Cached)).
			End(path)
	}()

	src, ok := w.read(&result)
	if !ok {
		return result
	}

	key := cache.Key(src, fingerprint)
	if opts.Cache != nil {
		clean, err := opts.Cache.IsClean(key)
		if err != nil {
			w.cacheWarning(&result, err)
		}
		if clean && !opts.Stdout {
			result.Cached = true
			return result
		}
	}

	out, ok := w.normalize(src, &result)
	if !ok {
		return result
	}
	result.Changed = !bytes.Equal(src, out)

	switch {
	case opts.Stdout:
		result.Formatted = out
	case opts.Check:
	case result.Changed:
		w.write(path, out, &result)
		if result.Err == nil {
			key = cache.Key(out, fingerprint)
		}
	}

	if opts.Cache != nil && result.Err == nil && (!result.Changed || result.Destination != "") {
		if err := opts.Cache.MarkClean(key, path, int64(len(out))); err != nil {
			w.cacheWarning(&result, err)
		}
	}
	return result
}

func (w *fileWork) cacheWarning(result *FixResult, err error) {
	w.bag(result).Add(diag.New(diag.SevWarning, diag.IOCacheAccess, w.path, 0, fmt.Sprintf("cache: %v", err)))
}

// CollectFiles expands paths into a sorted, de-duplicated file list.
func CollectFiles(ctx context.Context, paths, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, &IOError{Op: "read", Path: p, Err: err}
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && isHiddenDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if slices.Contains(extensions, filepath.Ext(path)) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func isHiddenDir(name string) bool {
	return (len(name) > 1 && name[0] == '.') || name == "__pycache__"
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Files   int
	Changed int
	Cached  int
	Failed  int
}

// Summarize tallies results.
func Summarize(results []FixResult) Summary {
	var s Summary
	for i := range results {
		s.Files++
		switch {
		case results[i].Err != nil:
			s.Failed++
		case results[i].Changed:
			s.Changed++
		case results[i].Cached:
			s.Cached++
		}
	}
	return s
}
