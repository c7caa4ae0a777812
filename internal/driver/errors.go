package driver

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDestination is returned in new-file mode when no destination is set.
	ErrNoDestination = errors.New("driver: destination path required unless overwriting")
	// ErrNoFiles is returned when a batch collects no source files.
	ErrNoFiles = errors.New("driver: no source files found")
	// ErrIO matches every *IOError.
	ErrIO = errors.New("driver: i/o failure")
)

// IOError describes a failed read or write of a source or destination file.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is reports ErrIO as a match so callers can test the category.
func (e *IOError) Is(target error) bool { return target == ErrIO }
