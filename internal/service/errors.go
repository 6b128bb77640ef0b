package service

import (
	"errors"
	"fmt"
)

// ErrAllocationExhausted is returned when no free arrival-card number was
// found within the bounded attempt count. It is not retried at a higher
// level and never silently defaulted; the submission fails with a 500.
var ErrAllocationExhausted = errors.New("arrival card number allocation exhausted")

// StepError wraps a failure with the workflow state that was never
// reached because of it.  Handlers surface the underlying message; tests
// assert on the state.
type StepError struct {
	State State // state the workflow failed to reach
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("issuance failed to reach %s: %v", e.State, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// failed builds the terminal error for a broken transition.
func failed(state State, err error) *StepError {
	return &StepError{State: state, Err: err}
}
