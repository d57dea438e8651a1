package player

import (
	"context"

	playerservice "github.com/Black-And-White-Club/trip-scorer/app/modules/player/application"
	playerhandlers "github.com/Black-And-White-Club/trip-scorer/app/modules/player/infrastructure/handlers"
	playerdb "github.com/Black-And-White-Club/trip-scorer/app/modules/player/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the player module.
type Module struct {
	Repository playerdb.Repository
	Service    playerservice.Service
}

// NewModule wires the roster repository, service and routes.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	httpRouter chi.Router,
	guards httpapi.Guards,
	activity playerservice.ScoreActivity,
	db *bun.DB,
) *Module {
	obs.Logger.InfoContext(ctx, "player.NewModule initializing")

	repo := playerdb.NewRepository(db)
	service := playerservice.NewPlayerService(repo, activity, obs, db)
	handlers := playerhandlers.NewHTTPHandlers(service, obs.Logger)

	if httpRouter != nil {
		httpRouter.Route("/api/players", func(r chi.Router) {
			r.Use(guards.Limit())
			handlers.Routes(r, guards.Auth())
		})
	}

	return &Module{Repository: repo, Service: service}
}
