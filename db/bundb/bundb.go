// Package bundb opens the bun store and runs module migrations.
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	coursemigrations "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories/migrations"
	playermigrations "github.com/Black-And-White-Club/trip-scorer/app/modules/player/infrastructure/repositories/migrations"
	roundmigrations "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/repositories/migrations"
	scoremigrations "github.com/Black-And-White-Club/trip-scorer/app/modules/score/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/trip-scorer/config"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the configured store and pings it.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*bun.DB, error) {
	var db *bun.DB

	switch cfg.Driver {
	case DriverPostgres, "":
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
		db = bun.NewDB(sqldb, pgdialect.New())
	case DriverSQLite:
		sqldb, err := sql.Open("sqlite3", sqliteDSN(cfg.DSN))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		// One connection keeps in-memory databases alive and serialises writers.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// sqliteDSN turns on foreign key enforcement, which sqlite leaves off by default.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// NamedMigrator pairs a module name with its migrator.
type NamedMigrator struct {
	Module   string
	Migrator *migrate.Migrator
}

// Migrators returns one migrator per module in dependency order.
func Migrators(db *bun.DB) []NamedMigrator {
	return []NamedMigrator{
		{Module: "player", Migrator: migrate.NewMigrator(db, playermigrations.Migrations)},
		{Module: "course", Migrator: migrate.NewMigrator(db, coursemigrations.Migrations)},
		{Module: "round", Migrator: migrate.NewMigrator(db, roundmigrations.Migrations)},
		{Module: "score", Migrator: migrate.NewMigrator(db, scoremigrations.Migrations)},
	}
}

// MigrateAll initialises migration tables and applies every module's
// pending migrations.
func MigrateAll(ctx context.Context, db *bun.DB) error {
	for _, m := range Migrators(db) {
		if err := m.Migrator.Init(ctx); err != nil {
			return fmt.Errorf("init %s migrations: %w", m.Module, err)
		}
		if _, err := m.Migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate %s: %w", m.Module, err)
		}
	}
	return nil
}
