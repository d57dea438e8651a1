package playerdb

import "errors"

// Sentinel errors for the repository layer.
var (
	// ErrNotFound indicates the requested player does not exist.
	ErrNotFound = errors.New("player not found")

	// ErrNoRowsAffected indicates an UPDATE or DELETE matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)
