//go:build integration

package testutils

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"testing"
	"time"

	"github.com/Black-And-White-Club/trip-scorer/app"
	"github.com/Black-And-White-Club/trip-scorer/app/eventbus"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/config"
	"github.com/Black-And-White-Club/trip-scorer/db/bundb"
	"github.com/Black-And-White-Club/trip-scorer/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
)

// TestEnvironment holds the containers and store shared by a package's tests.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	NatsContainer testcontainers.Container
	DB            *bun.DB
	Config        *config.Config
}

// NewTestEnvironment starts Postgres and NATS and migrates the store.
func NewTestEnvironment() (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())
	env := &TestEnvironment{Ctx: ctx, CancelContext: cancel}

	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}
	env.PgContainer = pgContainer

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("failed to setup nats container: %w", err)
	}
	env.NatsContainer = natsContainer

	env.Config = &config.Config{
		Database: config.DatabaseConfig{Driver: bundb.DriverPostgres, DSN: pgConnStr},
		NATS:     config.NATSConfig{URL: natsURL},
		HTTP:     config.HTTPConfig{RateLimit: 1000, RateBurst: 1000, ShutdownTimeout: 5 * time.Second},
		Cache:    config.CacheConfig{TTL: time.Minute, CleanupInterval: time.Minute},
	}

	db, err := bundb.Open(ctx, env.Config.Database)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.DB = db

	if err := bundb.MigrateAll(ctx, db); err != nil {
		env.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return env, nil
}

// ResetDatabase empties every table, leaving migrations applied.
func (env *TestEnvironment) ResetDatabase(ctx context.Context) error {
	_, err := env.DB.ExecContext(ctx,
		"TRUNCATE TABLE round_achievements, scores, rounds, holes, courses, players RESTART IDENTITY CASCADE")
	if err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

// StartApp wires the modules over the shared store and a fresh NATS
// connection, and runs the event router until the test ends.
func (env *TestEnvironment) StartApp(t *testing.T) *app.App {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	obs := observability.NewNop()
	obs.Logger = logger

	bus, err := eventbus.New(env.Config.NATS, logger)
	if err != nil {
		t.Fatalf("failed to create event bus: %v", err)
	}

	a, err := app.New(env.Ctx, env.Config, obs, env.DB, bus)
	if err != nil {
		_ = bus.Close()
		t.Fatalf("failed to wire app: %v", err)
	}

	ctx, cancel := context.WithCancel(env.Ctx)
	go func() {
		if err := a.WatermillRouter.Run(ctx); err != nil {
			log.Printf("watermill router stopped: %v", err)
		}
	}()
	t.Cleanup(func() {
		cancel()
		_ = a.WatermillRouter.Close()
		_ = bus.Close()
	})

	select {
	case <-a.WatermillRouter.Running():
	case <-time.After(15 * time.Second):
		t.Fatal("watermill router did not start")
	}
	return a
}

// Close terminates the containers and releases the store.
func (env *TestEnvironment) Close() {
	if env.DB != nil {
		_ = env.DB.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if env.NatsContainer != nil {
		if err := env.NatsContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating NATS container: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating PostgreSQL container: %v", err)
		}
	}
	env.CancelContext()
}
