package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"

	"pepfix/internal/diag"
	"pepfix/internal/lines"
	"pepfix/internal/observ"
	"pepfix/internal/trace"
)

// FixRequest describes one file to fix.
type FixRequest struct {
	Source      string
	Destination string // ignored when Overwrite is set
	Overwrite   bool
	// Check reports whether the file would change without writing anything.
	Check          bool
	Options        Options
	MaxDiagnostics int
}

// FixResult captures the outcome for a single file.
type FixResult struct {
	Path        string
	Destination string // where the output was written; empty when nothing was
	Changed     bool
	Cached      bool // skipped because the cache knew the file was clean
	Err         error
	Formatted   []byte
	Diagnostics *diag.Bag
	Timing      observ.Report
}

// FixFile reads req.Source, runs the pipeline and writes the result. In
// overwrite mode the source is only rewritten when its content changes; in
// new-file mode the destination is always written.
func FixFile(ctx context.Context, req FixRequest) (result FixResult) {
	result = FixResult{Path: req.Source}
	if !req.Overwrite && !req.Check && req.Destination == "" {
		result.Err = ErrNoDestination
		return result
	}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "fix", 0)
	defer func() {
		span.WithExtra("changed", strconv.FormatBool(result.Changed)).End(req.Source)
	}()

	w := fileWork{
		path:    req.Source,
		opts:    req.Options,
		maxDiag: req.MaxDiagnostics,
		tracer:  tracer,
		span:    span.ID(),
		timer:   observ.NewTimer(),
	}
	defer func() {
		result.Timing = w.timer.Report()
	}()

	src, ok := w.read(&result)
	if !ok {
		return result
	}
	out, ok := w.normalize(src, &result)
	if !ok {
		return result
	}
	result.Changed = !bytes.Equal(src, out)

	switch {
	case req.Check:
	case req.Overwrite:
		if result.Changed {
			w.write(req.Source, out, &result)
		}
	default:
		w.write(req.Destination, out, &result)
	}
	return result
}

// fileWork carries the state shared by the steps of fixing one file.
type fileWork struct {
	path    string
	opts    Options
	maxDiag int
	sink    ProgressSink
	tracer  trace.Tracer
	span    uint64
	timer   *observ.Timer
}

func (w *fileWork) bag(result *FixResult) *diag.Bag {
	if result.Diagnostics == nil {
		result.Diagnostics = diag.NewBag(w.maxDiag)
	}
	return result.Diagnostics
}

func (w *fileWork) stage(stage Stage) {
	emit(w.sink, Event{File: w.path, Stage: stage, Status: StatusWorking})
	trace.Point(w.tracer, trace.ScopeRule, string(stage), w.path, w.span)
}

func (w *fileWork) fail(result *FixResult, code diag.Code, err error) {
	result.Err = err
	w.bag(result).Add(diag.NewError(code, w.path, err.Error()))
	trace.Error(w.tracer, trace.ScopeFile, "fix", err, w.span)
}

func (w *fileWork) read(result *FixResult) ([]byte, bool) {
	if w.timer == nil {
		w.timer = observ.NewTimer()
	}
	w.stage(StageRead)
	done := w.timer.Track(string(StageRead))
	// #nosec G304 -- paths come from the command line
	data, err := os.ReadFile(w.path)
	done(w.path)
	if err != nil {
		w.fail(result, diag.IOReadFile, &IOError{Op: "read", Path: w.path, Err: err})
		return nil, false
	}
	return data, true
}

func (w *fileWork) normalize(src []byte, result *FixResult) ([]byte, bool) {
	doc := lines.Parse(src)
	reporter := diag.BagReporter{Bag: w.bag(result), Path: w.path}
	if err := run(doc, w.opts, reporter, w.timer, w.stage); err != nil {
		w.fail(result, diag.IOMalformed, err)
		return nil, false
	}
	return doc.Bytes(), true
}

func (w *fileWork) write(dest string, data []byte, result *FixResult) {
	w.stage(StageWrite)
	done := w.timer.Track(string(StageWrite))
	err := writeFileAtomic(dest, data, sourceMode(w.path))
	done(dest)
	if err != nil {
		w.fail(result, diag.IOWriteFile, &IOError{Op: "write", Path: dest, Err: err})
		return
	}
	result.Destination = dest
}

func sourceMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place. The temp file is closed and removed on every failure path.
func writeFileAtomic(path string, data []byte, mode os.FileMode) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	err = os.Rename(tmp, path)
	return err
}
