package roundmigrations

import (
	"context"
	"fmt"

	rounddb "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating rounds table...")

		if _, err := db.NewCreateTable().
			Model((*rounddb.Round)(nil)).
			IfNotExists().
			ForeignKey(`("course_id") REFERENCES "courses" ("id")`).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create rounds table: %w", err)
		}

		if _, err := db.NewCreateIndex().
			Model((*rounddb.Round)(nil)).
			Index("idx_rounds_is_complete").
			Column("is_complete").
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create rounds index: %w", err)
		}

		fmt.Println("Rounds table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping rounds table...")

		if _, err := db.NewDropTable().Model((*rounddb.Round)(nil)).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop rounds table: %w", err)
		}

		fmt.Println("Rounds table dropped successfully!")
		return nil
	})
}
