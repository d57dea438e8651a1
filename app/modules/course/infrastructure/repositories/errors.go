package coursedb

import "errors"

var (
	// ErrNotFound is returned when a course does not exist.
	ErrNotFound = errors.New("course not found")

	// ErrNoRowsAffected is returned when a delete matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)
