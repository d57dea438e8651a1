package scoredb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository persists raw scores and achievements. A nil bun.IDB uses the
// repository's own connection.
type Repository interface {
	// UpsertScores inserts scores, replacing strokes and flags for any
	// (round, player, hole) already recorded.
	UpsertScores(ctx context.Context, db bun.IDB, scores []Score) error
	ListScoresByRound(ctx context.Context, db bun.IDB, roundID string) ([]Score, error)
	CountScoresForPlayer(ctx context.Context, db bun.IDB, playerID string) (int, error)

	// UpsertAchievement records the winner of a side contest, replacing any
	// previous winner for the same (round, hole, type).
	UpsertAchievement(ctx context.Context, db bun.IDB, achievement *Achievement) error
	ListAchievementsByRound(ctx context.Context, db bun.IDB, roundID string) ([]Achievement, error)
	GetAchievement(ctx context.Context, db bun.IDB, id string) (*Achievement, error)
	DeleteAchievement(ctx context.Context, db bun.IDB, id string) error
}
