package errs

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the registry matches exactly one of
// these via errors.Is.
var (
	// ErrInvalid marks a rejected argument: unknown account, bad amount, duplicate key.
	ErrInvalid = errors.New("invalid_argument")
	// ErrFailure marks an operation that was well-formed but could not be carried out.
	ErrFailure = errors.New("runtime_failure")
)

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound      = fmt.Errorf("%w: account not found", ErrInvalid)
	ErrDuplicate     = fmt.Errorf("%w: account already registered", ErrInvalid)
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrInvalid)
	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = fmt.Errorf("%w: insufficient funds", ErrFailure)
)
