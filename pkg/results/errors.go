package results

import "errors"

// Failure kinds. Module errors wrap one of these so transports can map a
// failure to a status without knowing every module's sentinels.
var (
	// ErrNotFound marks a failure caused by a missing record.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a failure caused by the record's current state,
	// such as editing a round that is already complete.
	ErrConflict = errors.New("conflict")

	// ErrInvalid marks a failure caused by bad input.
	ErrInvalid = errors.New("invalid input")
)

// IsFailureKind reports whether err wraps one of the failure kinds.
func IsFailureKind(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrInvalid)
}

// FromError routes err to the right half of an operation's outcome: a
// failure result when it wraps a failure kind, the error return otherwise.
func FromError[S any](err error) (OperationResult[S, error], error) {
	if IsFailureKind(err) {
		return FailureResult[S, error](err), nil
	}
	return OperationResult[S, error]{}, err
}
