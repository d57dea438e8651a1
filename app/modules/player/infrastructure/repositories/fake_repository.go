package playerdb

import (
	"context"

	"github.com/uptrace/bun"
)

// FakeRepository is a programmable Repository for tests.
type FakeRepository struct {
	CreatePlayerFn func(ctx context.Context, db bun.IDB, player *Player) error
	GetPlayerFn    func(ctx context.Context, db bun.IDB, id string) (*Player, error)
	ListPlayersFn  func(ctx context.Context, db bun.IDB) ([]Player, error)
	UpdatePlayerFn func(ctx context.Context, db bun.IDB, player *Player) error
	DeletePlayerFn func(ctx context.Context, db bun.IDB, id string) error

	trace []string
}

var _ Repository = (*FakeRepository)(nil)

func (f *FakeRepository) record(step string) { f.trace = append(f.trace, step) }

// Trace returns the method calls made so far, in order.
func (f *FakeRepository) Trace() []string { return f.trace }

func (f *FakeRepository) CreatePlayer(ctx context.Context, db bun.IDB, player *Player) error {
	f.record("CreatePlayer")
	if f.CreatePlayerFn != nil {
		return f.CreatePlayerFn(ctx, db, player)
	}
	return nil
}

func (f *FakeRepository) GetPlayer(ctx context.Context, db bun.IDB, id string) (*Player, error) {
	f.record("GetPlayer")
	if f.GetPlayerFn != nil {
		return f.GetPlayerFn(ctx, db, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) ListPlayers(ctx context.Context, db bun.IDB) ([]Player, error) {
	f.record("ListPlayers")
	if f.ListPlayersFn != nil {
		return f.ListPlayersFn(ctx, db)
	}
	return nil, nil
}

func (f *FakeRepository) UpdatePlayer(ctx context.Context, db bun.IDB, player *Player) error {
	f.record("UpdatePlayer")
	if f.UpdatePlayerFn != nil {
		return f.UpdatePlayerFn(ctx, db, player)
	}
	return nil
}

func (f *FakeRepository) DeletePlayer(ctx context.Context, db bun.IDB, id string) error {
	f.record("DeletePlayer")
	if f.DeletePlayerFn != nil {
		return f.DeletePlayerFn(ctx, db, id)
	}
	return nil
}
