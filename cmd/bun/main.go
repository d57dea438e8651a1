package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Black-And-White-Club/trip-scorer/config"
	"github.com/Black-And-White-Club/trip-scorer/db/bundb"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "bun",
		Usage: "manage trip-scorer database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
		},
		Commands: []*cli.Command{
			newMultiModuleDBCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// withMigrators opens the configured store for the duration of action.
func withMigrators(action func(c *cli.Context, migrators []bundb.NamedMigrator) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.LoadConfig(c.String("config"))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		db, err := bundb.Open(c.Context, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		return action(c, bundb.Migrators(db))
	}
}

func findMigrator(migrators []bundb.NamedMigrator, module string) (*migrate.Migrator, error) {
	for _, m := range migrators {
		if m.Module == module {
			return m.Migrator, nil
		}
	}
	return nil, fmt.Errorf("invalid module name: %s", module)
}

func newMultiModuleDBCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: withMigrators(func(c *cli.Context, migrators []bundb.NamedMigrator) error {
					for _, m := range migrators {
						fmt.Printf("Initializing migrations for module: %s\n", m.Module)
						if err := m.Migrator.Init(c.Context); err != nil {
							return fmt.Errorf("init %s: %w", m.Module, err)
						}
					}
					return nil
				}),
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: withMigrators(func(c *cli.Context, migrators []bundb.NamedMigrator) error {
					for _, m := range migrators {
						fmt.Printf("Running migrations for module: %s\n", m.Module)
						group, err := m.Migrator.Migrate(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", m.Module)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", m.Module, group)
						}
					}
					return nil
				}),
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: withMigrators(func(c *cli.Context, migrators []bundb.NamedMigrator) error {
					// Dependents first, so foreign keys never point at a dropped table.
					for i := len(migrators) - 1; i >= 0; i-- {
						m := migrators[i]
						fmt.Printf("Rolling back migrations for module: %s\n", m.Module)
						group, err := m.Migrator.Rollback(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", m.Module)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", m.Module, group)
						}
					}
					return nil
				}),
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: withMigrators(func(c *cli.Context, migrators []bundb.NamedMigrator) error {
					migrator, err := findMigrator(migrators, c.Args().First())
					if err != nil {
						return err
					}
					name := strings.Join(c.Args().Tail(), "_")
					mf, err := migrator.CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Printf("Created migration for module %s: %s (%s)\n", c.Args().First(), mf.Name, mf.Path)
					return nil
				}),
			},
			{
				Name:      "create_sql",
				Usage:     "create up and down SQL migrations",
				ArgsUsage: "<module> <name...>",
				Action: withMigrators(func(c *cli.Context, migrators []bundb.NamedMigrator) error {
					migrator, err := findMigrator(migrators, c.Args().First())
					if err != nil {
						return err
					}
					name := strings.Join(c.Args().Tail(), "_")
					files, err := migrator.CreateSQLMigrations(c.Context, name)
					if err != nil {
						return err
					}
					for _, mf := range files {
						fmt.Printf("Created migration for module %s: %s (%s)\n", c.Args().First(), mf.Name, mf.Path)
					}
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: withMigrators(func(c *cli.Context, migrators []bundb.NamedMigrator) error {
					return printStatus(c.Context, migrators)
				}),
			},
		},
	}
}

func printStatus(ctx context.Context, migrators []bundb.NamedMigrator) error {
	for _, m := range migrators {
		ms, err := m.Migrator.MigrationsWithStatus(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Migrations for module: %s\n", m.Module)
		fmt.Printf("  %s\n", ms)
		fmt.Printf("  Applied: %s\n", ms.Applied())
		fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
	}
	return nil
}
