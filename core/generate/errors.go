package generate

import (
	"errors"
	"fmt"
)

// ErrEvaluation is returned when a template cannot be turned into artifacts.
var ErrEvaluation = errors.New("evaluation failed")

// EvaluationError names the template and expression that failed.
type EvaluationError struct {
	Template   string
	Expression string
	Err        error
}

func (e *EvaluationError) Error() string {
	if e.Expression == "" {
		return fmt.Sprintf("template %q: %v", e.Template, e.Err)
	}
	return fmt.Sprintf("template %q, expression %q: %v", e.Template, e.Expression, e.Err)
}

func (e *EvaluationError) Is(target error) bool { return target == ErrEvaluation }

func (e *EvaluationError) Unwrap() error { return e.Err }
