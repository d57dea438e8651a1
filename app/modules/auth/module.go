package auth

import (
	"context"
	"log/slog"

	authservice "github.com/Black-And-White-Club/trip-scorer/app/modules/auth/application"
	authhandlers "github.com/Black-And-White-Club/trip-scorer/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/trip-scorer/app/modules/auth/infrastructure/jwt"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/config"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"golang.org/x/time/rate"
)

// Module represents the auth module.
type Module struct {
	service authservice.Service
	guards  httpapi.Guards
	logger  *slog.Logger
}

// NewModule creates a new auth module. Without a secret, mutating routes are
// left open and token issuing fails.
func NewModule(ctx context.Context, cfg *config.Config, obs observability.Observability) *Module {
	logger := obs.Logger

	var provider authjwt.Provider
	if cfg.Auth.Secret != "" {
		provider = authjwt.NewProvider(cfg.Auth.Secret, cfg.Auth.Issuer)
	} else {
		logger.WarnContext(ctx, "auth.secret not set; mutating routes are unauthenticated")
	}

	limiter := authhandlers.NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst)

	return &Module{
		service: authservice.NewService(provider, cfg.Auth.DefaultTTL, obs),
		guards: httpapi.Guards{
			RateLimit:   authhandlers.RateLimitMiddleware(limiter),
			RequireAuth: authhandlers.RequireScorekeeper(provider, logger),
		},
		logger: logger,
	}
}

// Guards returns the middlewares other modules mount on their routes.
func (m *Module) Guards() httpapi.Guards {
	return m.guards
}

// GetService returns the auth service for use by other modules.
func (m *Module) GetService() authservice.Service {
	return m.service
}
