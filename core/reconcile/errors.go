package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConflict is returned (wrapped) when generated files drifted from the saved manifest.
	ErrConflict = errors.New("generated files were modified")

	// ErrIO is returned (wrapped) when a filesystem operation fails during a run.
	ErrIO = errors.New("filesystem operation failed")

	// ErrInvalidArtifact is returned (wrapped) when an artifact cannot be materialized as given.
	ErrInvalidArtifact = errors.New("invalid artifact")
)

// ConflictError lists every path whose on-disk content differs from the saved manifest.
type ConflictError struct {
	// Paths holds the drifted paths, sorted.
	Paths []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%d generated file(s) were modified since the last run; "+
		"revert them, delete them or add them to .generator-ignore: %s",
		len(e.Paths), strings.Join(e.Paths, ", "))
}

// Is reports whether target is ErrConflict.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// IOError describes a failed filesystem operation.
type IOError struct {
	// Op is the operation, e.g. "write", "delete", "chmod", "hash".
	Op string
	// Path is the path the operation was applied to.
	Path string
	// Err is the underlying error.
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func ioError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}
