package authservice

import (
	"fmt"

	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
)

var (
	// ErrAuthDisabled is returned when no signing secret is configured.
	ErrAuthDisabled = fmt.Errorf("auth is not configured: %w", results.ErrConflict)

	// ErrUnauthorized is returned for tokens that fail validation.
	ErrUnauthorized = fmt.Errorf("unauthorized: %w", results.ErrInvalid)
)
