package manifest

import (
	"errors"
	"fmt"
)

// ErrFormat is returned (wrapped) when a manifest line cannot be parsed.
var ErrFormat = errors.New("malformed manifest")

// FormatError describes a single malformed manifest line.
type FormatError struct {
	// Line is the 1-based line number.
	Line int
	// Text is the offending line.
	Text string
	// Reason describes what is wrong with it.
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed manifest line %d %q: %s", e.Line, e.Text, e.Reason)
	}
	return fmt.Sprintf("malformed manifest entry %q: %s", e.Text, e.Reason)
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
