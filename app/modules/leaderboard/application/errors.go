package leaderboardservice

import (
	"fmt"

	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
)

var ErrRoundNotFound = fmt.Errorf("round %w", results.ErrNotFound)
