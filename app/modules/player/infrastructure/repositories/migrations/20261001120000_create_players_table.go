package playermigrations

import (
	"context"
	"fmt"

	playerdb "github.com/Black-And-White-Club/trip-scorer/app/modules/player/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating players table...")

		if _, err := db.NewCreateTable().Model((*playerdb.Player)(nil)).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create players table: %w", err)
		}

		fmt.Println("Players table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping players table...")

		if _, err := db.NewDropTable().Model((*playerdb.Player)(nil)).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop players table: %w", err)
		}

		fmt.Println("Players table dropped successfully!")
		return nil
	})
}
