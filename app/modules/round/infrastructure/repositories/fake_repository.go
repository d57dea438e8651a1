package rounddb

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// FakeRepository is a programmable Repository for tests.
type FakeRepository struct {
	CreateRoundFn          func(ctx context.Context, db bun.IDB, round *Round) error
	GetRoundFn             func(ctx context.Context, db bun.IDB, id string) (*Round, error)
	ListRoundsFn           func(ctx context.Context, db bun.IDB) ([]Round, error)
	ListCompletedRoundsFn  func(ctx context.Context, db bun.IDB) ([]Round, error)
	MarkCompleteFn         func(ctx context.Context, db bun.IDB, id string, at time.Time) error
	DeleteRoundFn          func(ctx context.Context, db bun.IDB, id string) error
	TouchRoundFn           func(ctx context.Context, db bun.IDB, id string) error
	MaxRoundNumberFn       func(ctx context.Context, db bun.IDB) (int, error)
	CountRoundsForCourseFn func(ctx context.Context, db bun.IDB, courseID string) (int, error)

	trace []string
}

var _ Repository = (*FakeRepository)(nil)

func (f *FakeRepository) record(step string) { f.trace = append(f.trace, step) }

// Trace returns the method calls made so far, in order.
func (f *FakeRepository) Trace() []string { return f.trace }

func (f *FakeRepository) CreateRound(ctx context.Context, db bun.IDB, round *Round) error {
	f.record("CreateRound")
	if f.CreateRoundFn != nil {
		return f.CreateRoundFn(ctx, db, round)
	}
	return nil
}

func (f *FakeRepository) GetRound(ctx context.Context, db bun.IDB, id string) (*Round, error) {
	f.record("GetRound")
	if f.GetRoundFn != nil {
		return f.GetRoundFn(ctx, db, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) ListRounds(ctx context.Context, db bun.IDB) ([]Round, error) {
	f.record("ListRounds")
	if f.ListRoundsFn != nil {
		return f.ListRoundsFn(ctx, db)
	}
	return nil, nil
}

func (f *FakeRepository) ListCompletedRounds(ctx context.Context, db bun.IDB) ([]Round, error) {
	f.record("ListCompletedRounds")
	if f.ListCompletedRoundsFn != nil {
		return f.ListCompletedRoundsFn(ctx, db)
	}
	return nil, nil
}

func (f *FakeRepository) MarkComplete(ctx context.Context, db bun.IDB, id string, at time.Time) error {
	f.record("MarkComplete")
	if f.MarkCompleteFn != nil {
		return f.MarkCompleteFn(ctx, db, id, at)
	}
	return nil
}

func (f *FakeRepository) DeleteRound(ctx context.Context, db bun.IDB, id string) error {
	f.record("DeleteRound")
	if f.DeleteRoundFn != nil {
		return f.DeleteRoundFn(ctx, db, id)
	}
	return nil
}

func (f *FakeRepository) TouchRound(ctx context.Context, db bun.IDB, id string) error {
	f.record("TouchRound")
	if f.TouchRoundFn != nil {
		return f.TouchRoundFn(ctx, db, id)
	}
	return nil
}

func (f *FakeRepository) MaxRoundNumber(ctx context.Context, db bun.IDB) (int, error) {
	f.record("MaxRoundNumber")
	if f.MaxRoundNumberFn != nil {
		return f.MaxRoundNumberFn(ctx, db)
	}
	return 0, nil
}

func (f *FakeRepository) CountRoundsForCourse(ctx context.Context, db bun.IDB, courseID string) (int, error) {
	f.record("CountRoundsForCourse")
	if f.CountRoundsForCourseFn != nil {
		return f.CountRoundsForCourseFn(ctx, db, courseID)
	}
	return 0, nil
}
