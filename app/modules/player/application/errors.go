package playerservice

import (
	"fmt"

	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
)

// Domain failures returned in OperationResult.Failure.
var (
	ErrPlayerNotFound  = fmt.Errorf("player %w", results.ErrNotFound)
	ErrDuplicateName   = fmt.Errorf("player name already taken: %w", results.ErrConflict)
	ErrPlayerHasScores = fmt.Errorf("player has recorded scores: %w", results.ErrConflict)
)
