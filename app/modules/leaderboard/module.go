package leaderboard

import (
	"context"
	"fmt"

	leaderboardservice "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/application"
	"github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/infrastructure/adapters"
	leaderboardhandlers "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/infrastructure/handlers"
	leaderboardrouter "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/infrastructure/router"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/config"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/patrickmn/go-cache"
)

// Module represents the leaderboard module.
type Module struct {
	LeaderboardService leaderboardservice.Service
	LeaderboardRouter  *leaderboardrouter.LeaderboardRouter
}

// Deps are the stores the leaderboard reads from. It owns no tables.
type Deps struct {
	Rounds leaderboardservice.RoundSource
	Roster leaderboardservice.Roster
	Scores adapters.ScoreReader
	Holes  adapters.HoleReader
}

// NewLeaderboardModule wires the standings service, its HTTP routes and, when
// a message router is given, the recompute handlers.
func NewLeaderboardModule(
	ctx context.Context,
	cfg config.CacheConfig,
	obs observability.Observability,
	deps Deps,
	httpRouter chi.Router,
	guards httpapi.Guards,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	opts ...leaderboardservice.Option,
) (*Module, error) {
	obs.Logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule called")

	memo := cache.New(cfg.TTL, cfg.CleanupInterval)
	loader := adapters.NewRoundDataAdapter(deps.Scores, deps.Holes)
	service := leaderboardservice.NewLeaderboardService(deps.Rounds, loader, deps.Roster, memo, obs, opts...)

	module := &Module{LeaderboardService: service}

	if httpRouter != nil {
		h := leaderboardhandlers.NewHTTPHandlers(service, obs.Logger)
		httpRouter.Route("/api/leaderboard", func(r chi.Router) {
			r.Use(guards.Limit())
			h.LeaderboardRoutes(r)
		})
		httpRouter.Route("/api/rounds/{roundID}/results", func(r chi.Router) {
			r.Use(guards.Limit())
			h.RoundResultsRoutes(r)
		})
	}

	if router != nil {
		lr := leaderboardrouter.NewLeaderboardRouter(obs.Logger, router, subscriber, publisher, obs.Registry)
		if err := lr.Configure(ctx, leaderboardhandlers.NewHandlers(service, obs.Logger)); err != nil {
			return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
		}
		module.LeaderboardRouter = lr
	}

	return module, nil
}
