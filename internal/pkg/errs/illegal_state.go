package errs

import (
	"errors"
	"fmt"
)

var ErrIllegalState = errors.New("illegal state")

// IllegalStateError is returned when an operation does not fit the current state
// of the object it targets: a duplicate identifier, a missing order in a pipeline
// stage, or a status transition the state machine forbids.
type IllegalStateError struct {
	Subject string
	Cause   error
}

func NewIllegalStateError(subject string) *IllegalStateError {
	return &IllegalStateError{Subject: subject}
}

func NewIllegalStateErrorWithCause(subject string, cause error) *IllegalStateError {
	return &IllegalStateError{Subject: subject, Cause: cause}
}

func (e *IllegalStateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrIllegalState, e.Subject, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrIllegalState, e.Subject)
}

func (e *IllegalStateError) Unwrap() error {
	return ErrIllegalState
}
