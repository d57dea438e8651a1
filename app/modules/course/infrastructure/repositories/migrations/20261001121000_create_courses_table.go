package coursemigrations

import (
	"context"
	"fmt"

	coursedb "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating courses and holes tables...")

		if _, err := db.NewCreateTable().Model((*coursedb.Course)(nil)).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create courses table: %w", err)
		}

		if _, err := db.NewCreateTable().
			Model((*coursedb.Hole)(nil)).
			IfNotExists().
			ForeignKey(`("course_id") REFERENCES "courses" ("id") ON DELETE CASCADE`).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create holes table: %w", err)
		}

		fmt.Println("Courses and holes tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping holes and courses tables...")

		for _, model := range []any{(*coursedb.Hole)(nil), (*coursedb.Course)(nil)} {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop table: %w", err)
			}
		}

		fmt.Println("Holes and courses tables dropped successfully!")
		return nil
	})
}
