package resolver

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped) when no root in the chain has the requested template.
var ErrNotFound = errors.New("template not found")

// NotFoundError names the location the caller asked for.
type NotFoundError struct {
	Location string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template %q not found in any template root", e.Location)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ResolveError is returned by ResolveLocation when the chain root cannot resolve a location.
type ResolveError struct {
	Location string
	Err      error
}

func (e *ResolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("can't resolve %q: %v", e.Location, e.Err)
	}
	return fmt.Sprintf("can't resolve %q", e.Location)
}

// Is reports whether target is ErrNotFound.
func (e *ResolveError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}
