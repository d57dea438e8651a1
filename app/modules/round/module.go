package round

import (
	"context"

	roundservice "github.com/Black-And-White-Club/trip-scorer/app/modules/round/application"
	roundhandlers "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/handlers"
	rounddb "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the round module.
type Module struct {
	Repository rounddb.Repository
	Service    roundservice.Service
}

// NewModule wires the round service and mounts /api/rounds. repo may be
// shared with modules built earlier; nil creates one.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	httpRouter chi.Router,
	guards httpapi.Guards,
	repo rounddb.Repository,
	courses roundservice.CourseLookup,
	roster roundservice.Roster,
	scores roundservice.ScoreWriter,
	publisher message.Publisher,
	db *bun.DB,
	opts ...roundservice.Option,
) *Module {
	obs.Logger.InfoContext(ctx, "round.NewModule initializing")

	if repo == nil {
		repo = rounddb.NewRepository(db)
	}
	service := roundservice.NewRoundService(repo, courses, roster, scores, publisher, obs, db, opts...)
	handlers := roundhandlers.NewHTTPHandlers(service, obs.Logger)

	if httpRouter != nil {
		httpRouter.Route("/api/rounds", func(r chi.Router) {
			r.Use(guards.Limit())
			handlers.Routes(r, guards.Auth())
		})
	}

	return &Module{Repository: repo, Service: service}
}
