package scoremigrations

import (
	"context"
	"fmt"

	scoredb "github.com/Black-And-White-Club/trip-scorer/app/modules/score/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating scores and round_achievements tables...")

		if _, err := db.NewCreateTable().
			Model((*scoredb.Score)(nil)).
			IfNotExists().
			ForeignKey(`("round_id") REFERENCES "rounds" ("id") ON DELETE CASCADE`).
			ForeignKey(`("player_id") REFERENCES "players" ("id")`).
			ForeignKey(`("hole_id") REFERENCES "holes" ("id")`).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create scores table: %w", err)
		}

		if _, err := db.NewCreateTable().
			Model((*scoredb.Achievement)(nil)).
			IfNotExists().
			ForeignKey(`("round_id") REFERENCES "rounds" ("id") ON DELETE CASCADE`).
			ForeignKey(`("player_id") REFERENCES "players" ("id")`).
			ForeignKey(`("hole_id") REFERENCES "holes" ("id")`).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create round_achievements table: %w", err)
		}

		indexes := []struct {
			model  any
			name   string
			column string
		}{
			{(*scoredb.Score)(nil), "idx_scores_player_id", "player_id"},
			{(*scoredb.Achievement)(nil), "idx_round_achievements_round_id", "round_id"},
		}
		for _, idx := range indexes {
			if _, err := db.NewCreateIndex().
				Model(idx.model).
				Index(idx.name).
				Column(idx.column).
				IfNotExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
		}

		fmt.Println("Scores tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping scores and round_achievements tables...")

		for _, model := range []any{(*scoredb.Achievement)(nil), (*scoredb.Score)(nil)} {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop table: %w", err)
			}
		}

		fmt.Println("Scores tables dropped successfully!")
		return nil
	})
}
