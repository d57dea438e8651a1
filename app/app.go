// Package app assembles the modules into a running service.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/trip-scorer/app/eventbus"
	"github.com/Black-And-White-Club/trip-scorer/app/modules/auth"
	"github.com/Black-And-White-Club/trip-scorer/app/modules/course"
	"github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard"
	"github.com/Black-And-White-Club/trip-scorer/app/modules/player"
	"github.com/Black-And-White-Club/trip-scorer/app/modules/round"
	rounddb "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/app/modules/score"
	scoredb "github.com/Black-And-White-Club/trip-scorer/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/config"
	"github.com/Black-And-White-Club/trip-scorer/db/bundb"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// App holds the store, transports and modules of one process.
type App struct {
	Config          *config.Config
	Observability   observability.Observability
	DB              *bun.DB
	EventBus        eventbus.EventBus
	WatermillRouter *message.Router
	HTTPRouter      chi.Router
	Modules         Modules
}

// Modules stores the application modules.
type Modules struct {
	Auth        *auth.Module
	Player      *player.Module
	Course      *course.Module
	Round       *round.Module
	Score       *score.Module
	Leaderboard *leaderboard.Module
}

// NewApp opens the store, applies migrations, connects the event bus and
// wires every module.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	db, err := bundb.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := bundb.MigrateAll(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	bus, err := eventbus.New(cfg.NATS, obs.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	app, err := New(ctx, cfg, obs, db, bus)
	if err != nil {
		bus.Close()
		db.Close()
		return nil, err
	}
	return app, nil
}

// New wires the modules over an already open store and event bus.
func New(ctx context.Context, cfg *config.Config, obs observability.Observability, db *bun.DB, bus eventbus.EventBus) (*App, error) {
	logger := obs.Logger

	wmRouter, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.HTTP.ShutdownTimeout}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Watermill router: %w", err)
	}

	httpRouter := newHTTPRouter(obs, db)

	app := &App{
		Config:          cfg,
		Observability:   obs,
		DB:              db,
		EventBus:        bus,
		WatermillRouter: wmRouter,
		HTTPRouter:      httpRouter,
	}

	if err := app.initializeModules(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

// initializeModules builds the modules in dependency order. The round and
// score stores are created up front because the player and course modules
// consult them before deleting.
func (app *App) initializeModules(ctx context.Context) error {
	obs := app.Observability
	db := app.DB

	rounds := rounddb.NewRepository(db)
	scores := scoredb.NewRepository(db)

	authModule := auth.NewModule(ctx, app.Config, obs)
	guards := authModule.Guards()

	playerModule := player.NewModule(ctx, obs, app.HTTPRouter, guards, scores, db)
	courseModule := course.NewModule(ctx, obs, app.HTTPRouter, guards, rounds, db)

	roundModule := round.NewModule(ctx, obs, app.HTTPRouter, guards,
		rounds, courseModule.Repository, playerModule.Repository, scores, app.EventBus, db)

	scoreModule := score.NewModule(ctx, obs, app.HTTPRouter, guards,
		scores, rounds, courseModule.Repository, playerModule.Repository, app.EventBus, db)

	leaderboardModule, err := leaderboard.NewLeaderboardModule(ctx, app.Config.Cache, obs,
		leaderboard.Deps{
			Rounds: rounds,
			Roster: playerModule.Repository,
			Scores: scores,
			Holes:  courseModule.Repository,
		},
		app.HTTPRouter, guards, app.WatermillRouter, app.EventBus, app.EventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}

	app.Modules = Modules{
		Auth:        authModule,
		Player:      playerModule,
		Course:      courseModule,
		Round:       roundModule,
		Score:       scoreModule,
		Leaderboard: leaderboardModule,
	}
	return nil
}

// Close releases the transports and the store.
func (app *App) Close() error {
	if err := app.WatermillRouter.Close(); err != nil {
		app.Observability.Logger.Error("Failed to close Watermill router", slog.Any("error", err))
	}
	if err := app.EventBus.Close(); err != nil {
		app.Observability.Logger.Error("Failed to close event bus", slog.Any("error", err))
	}
	return app.DB.Close()
}
