package exchange

import (
	"errors"
	"fmt"
)

// ErrInconsistentState marks locally detected data-integrity failures.
var ErrInconsistentState = errors.New("inconsistent exchange state")

// StateConsistencyError reports a snapshot or status combination outside the
// lifecycle table. It is never retried.
type StateConsistencyError struct {
	Reason string
}

func (e *StateConsistencyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInconsistentState, e.Reason)
}

func (e *StateConsistencyError) Unwrap() error {
	return ErrInconsistentState
}

func inconsistent(format string, args ...any) error {
	return &StateConsistencyError{Reason: fmt.Sprintf(format, args...)}
}
