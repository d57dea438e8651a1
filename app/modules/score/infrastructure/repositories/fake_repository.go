package scoredb

import (
	"context"
	"sync"

	"github.com/uptrace/bun"
)

// FakeRepository is a programmable Repository for tests. It is safe for
// concurrent use.
type FakeRepository struct {
	UpsertScoresFn            func(ctx context.Context, db bun.IDB, scores []Score) error
	ListScoresByRoundFn       func(ctx context.Context, db bun.IDB, roundID string) ([]Score, error)
	CountScoresForPlayerFn    func(ctx context.Context, db bun.IDB, playerID string) (int, error)
	UpsertAchievementFn       func(ctx context.Context, db bun.IDB, achievement *Achievement) error
	ListAchievementsByRoundFn func(ctx context.Context, db bun.IDB, roundID string) ([]Achievement, error)
	GetAchievementFn          func(ctx context.Context, db bun.IDB, id string) (*Achievement, error)
	DeleteAchievementFn       func(ctx context.Context, db bun.IDB, id string) error

	mu    sync.Mutex
	trace []string
}

var _ Repository = (*FakeRepository)(nil)

func (f *FakeRepository) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// Trace returns the method calls made so far, in order.
func (f *FakeRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trace...)
}

func (f *FakeRepository) UpsertScores(ctx context.Context, db bun.IDB, scores []Score) error {
	f.record("UpsertScores")
	if f.UpsertScoresFn != nil {
		return f.UpsertScoresFn(ctx, db, scores)
	}
	return nil
}

func (f *FakeRepository) ListScoresByRound(ctx context.Context, db bun.IDB, roundID string) ([]Score, error) {
	f.record("ListScoresByRound")
	if f.ListScoresByRoundFn != nil {
		return f.ListScoresByRoundFn(ctx, db, roundID)
	}
	return nil, nil
}

func (f *FakeRepository) CountScoresForPlayer(ctx context.Context, db bun.IDB, playerID string) (int, error) {
	f.record("CountScoresForPlayer")
	if f.CountScoresForPlayerFn != nil {
		return f.CountScoresForPlayerFn(ctx, db, playerID)
	}
	return 0, nil
}

func (f *FakeRepository) UpsertAchievement(ctx context.Context, db bun.IDB, achievement *Achievement) error {
	f.record("UpsertAchievement")
	if f.UpsertAchievementFn != nil {
		return f.UpsertAchievementFn(ctx, db, achievement)
	}
	return nil
}

func (f *FakeRepository) ListAchievementsByRound(ctx context.Context, db bun.IDB, roundID string) ([]Achievement, error) {
	f.record("ListAchievementsByRound")
	if f.ListAchievementsByRoundFn != nil {
		return f.ListAchievementsByRoundFn(ctx, db, roundID)
	}
	return nil, nil
}

func (f *FakeRepository) GetAchievement(ctx context.Context, db bun.IDB, id string) (*Achievement, error) {
	f.record("GetAchievement")
	if f.GetAchievementFn != nil {
		return f.GetAchievementFn(ctx, db, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) DeleteAchievement(ctx context.Context, db bun.IDB, id string) error {
	f.record("DeleteAchievement")
	if f.DeleteAchievementFn != nil {
		return f.DeleteAchievementFn(ctx, db, id)
	}
	return nil
}
