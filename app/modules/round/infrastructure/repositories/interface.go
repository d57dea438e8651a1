package rounddb

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Repository persists rounds. A nil bun.IDB uses the repository's own
// connection.
type Repository interface {
	CreateRound(ctx context.Context, db bun.IDB, round *Round) error
	// GetRound loads a round with its course.
	GetRound(ctx context.Context, db bun.IDB, id string) (*Round, error)
	// ListRounds returns every round with its course, newest round number first.
	ListRounds(ctx context.Context, db bun.IDB) ([]Round, error)
	// ListCompletedRounds returns complete rounds in round number order.
	ListCompletedRounds(ctx context.Context, db bun.IDB) ([]Round, error)
	MarkComplete(ctx context.Context, db bun.IDB, id string, at time.Time) error
	DeleteRound(ctx context.Context, db bun.IDB, id string) error
	// TouchRound bumps updated_at after a write to the round's scores.
	TouchRound(ctx context.Context, db bun.IDB, id string) error
	// MaxRoundNumber returns the highest round number, or 0 with no rounds.
	MaxRoundNumber(ctx context.Context, db bun.IDB) (int, error)
	CountRoundsForCourse(ctx context.Context, db bun.IDB, courseID string) (int, error)
}
