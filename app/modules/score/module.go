package score

import (
	"context"

	scoreservice "github.com/Black-And-White-Club/trip-scorer/app/modules/score/application"
	scorehandlers "github.com/Black-And-White-Club/trip-scorer/app/modules/score/infrastructure/handlers"
	scoredb "github.com/Black-And-White-Club/trip-scorer/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the score module.
type Module struct {
	Repository scoredb.Repository
	Service    scoreservice.Service
}

// NewModule wires score storage, the scoring service and its routes. The
// score store is created first so other modules can count a player's scores
// before the rest of the wiring is in place.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	httpRouter chi.Router,
	guards httpapi.Guards,
	repo scoredb.Repository,
	rounds scoreservice.RoundLookup,
	holes scoreservice.HoleLookup,
	roster scoreservice.Roster,
	publisher message.Publisher,
	db *bun.DB,
) *Module {
	obs.Logger.InfoContext(ctx, "score.NewModule initializing")

	if repo == nil {
		repo = scoredb.NewRepository(db)
	}
	service := scoreservice.NewScoreService(repo, rounds, holes, roster, publisher, obs, db)
	handlers := scorehandlers.NewHTTPHandlers(service, obs.Logger)

	if httpRouter != nil {
		mount := func(pattern string, routes func(chi.Router)) {
			httpRouter.Route(pattern, func(r chi.Router) {
				r.Use(guards.Limit())
				routes(r)
			})
		}
		mount("/api/rounds/{roundID}/scores", func(r chi.Router) { handlers.ScoreRoutes(r, guards.Auth()) })
		mount("/api/rounds/{roundID}/achievements", func(r chi.Router) { handlers.AchievementRoutes(r, guards.Auth()) })
		mount("/api/rounds/{roundID}/stats", handlers.StatsRoutes)
		mount("/api/achievements", func(r chi.Router) { handlers.AchievementItemRoutes(r, guards.Auth()) })
	}

	return &Module{Repository: repo, Service: service}
}
