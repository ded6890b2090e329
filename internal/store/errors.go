package store

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means the credential is missing, expired, or was
	// rejected. Callers treat it as a re-authenticate signal and never
	// retry the call.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the record no longer exists at the store.
	ErrNotFound = errors.New("not found")
)

// TransportError is a network or server failure on a single-shot call.
// The store layer never retries; the caller decides whether to surface a
// notice or log and move on. Op names the logical operation that failed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
