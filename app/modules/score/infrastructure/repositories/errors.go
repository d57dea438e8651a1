package scoredb

import "errors"

var (
	// ErrNotFound is returned when an achievement does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNoRowsAffected is returned when a delete matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)
