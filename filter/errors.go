package filter

import (
	"errors"
	"fmt"
)

// ErrEmptyExpression is wrapped by the CompilationError for a blank filter.
var ErrEmptyExpression = errors.New("empty expression")

// CompilationError reports a filter expression that does not compile against
// its record environment, e.g. an unknown field such as `Goals > 3` on
// standings rows.
type CompilationError struct {
	Expression string
	Reason     string
	Position   int // -1 if unknown
	Err        error
}

func (e *CompilationError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("invalid filter '%s' at position %d: %s", e.Expression, e.Position, e.Reason)
	}
	return fmt.Sprintf("invalid filter '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// EvaluationError reports a compiled filter that failed on one record, e.g.
// on standings row 'TOR' or game 'NJD @ TOR (FINAL)'.
type EvaluationError struct {
	Expression string
	RecordKind string // "standings row", "game"
	Record     string
	Reason     string
	Err        error
}

func (e *EvaluationError) Error() string {
	kind := e.RecordKind
	if kind == "" {
		kind = "record"
	}
	return fmt.Sprintf("filter '%s' failed on %s '%s': %s", e.Expression, kind, e.Record, e.Reason)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
