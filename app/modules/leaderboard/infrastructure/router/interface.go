package leaderboardrouter

import (
	"context"

	leaderboardhandlers "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/infrastructure/handlers"
)

// Router registers the leaderboard's event handlers on a watermill router.
type Router interface {
	Configure(ctx context.Context, handlers *leaderboardhandlers.Handlers) error
	Close() error
}
