package course

import (
	"context"

	courseservice "github.com/Black-And-White-Club/trip-scorer/app/modules/course/application"
	coursehandlers "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/handlers"
	coursedb "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the course module.
type Module struct {
	Repository coursedb.Repository
	Service    courseservice.Service
}

// NewModule wires the course repository, service and routes.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	httpRouter chi.Router,
	guards httpapi.Guards,
	usage courseservice.RoundUsage,
	db *bun.DB,
) *Module {
	obs.Logger.InfoContext(ctx, "course.NewModule initializing")

	repo := coursedb.NewRepository(db)
	service := courseservice.NewCourseService(repo, usage, obs, db)
	handlers := coursehandlers.NewHTTPHandlers(service, obs.Logger)

	if httpRouter != nil {
		httpRouter.Route("/api/courses", func(r chi.Router) {
			r.Use(guards.Limit())
			handlers.Routes(r, guards.Auth())
		})
	}

	return &Module{Repository: repo, Service: service}
}
