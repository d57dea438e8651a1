package scoreservice

import (
	"fmt"

	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
)

var (
	ErrRoundNotFound       = fmt.Errorf("round %w", results.ErrNotFound)
	ErrAchievementNotFound = fmt.Errorf("achievement %w", results.ErrNotFound)
	ErrRoundComplete       = fmt.Errorf("round is complete and can no longer be edited: %w", results.ErrConflict)
	ErrUnknownHole         = fmt.Errorf("%w: hole is not on the round's course", results.ErrInvalid)
	ErrUnknownPlayer       = fmt.Errorf("%w: unknown player", results.ErrInvalid)
	ErrDuplicateEntry      = fmt.Errorf("%w: a player and hole may appear only once per request", results.ErrInvalid)
)
