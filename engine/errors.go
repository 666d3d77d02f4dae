package engine

import (
	"errors"
	"fmt"
)

// ValidationError reports input the engine refuses to persist. Recoverable by
// correcting the field and retrying.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrPrerequisiteNotMet is returned when an operation requires a previously
// saved payout record and none exists yet.
var ErrPrerequisiteNotMet = errors.New("payout record has not been saved yet")

// StoreError wraps a remote-store failure. Retryable by the caller; the
// engine itself never retries and commits no partial state.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStoreUnavailable reports whether err came from the remote store.
func IsStoreUnavailable(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
