package rounddb

import "errors"

var (
	// ErrNotFound is returned when a round does not exist.
	ErrNotFound = errors.New("round not found")

	// ErrNoRowsAffected is returned when an update or delete matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)
