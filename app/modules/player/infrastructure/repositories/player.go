package playerdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// Impl implements Repository on bun.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new player repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) CreatePlayer(ctx context.Context, db bun.IDB, player *Player) error {
	if db == nil {
		db = r.db
	}
	if _, err := db.NewInsert().Model(player).Exec(ctx); err != nil {
		return fmt.Errorf("playerdb.CreatePlayer: %w", err)
	}
	return nil
}

func (r *Impl) GetPlayer(ctx context.Context, db bun.IDB, id string) (*Player, error) {
	if db == nil {
		db = r.db
	}
	player := new(Player)
	err := db.NewSelect().Model(player).Where("p.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("playerdb.GetPlayer: %w", err)
	}
	return player, nil
}

func (r *Impl) ListPlayers(ctx context.Context, db bun.IDB) ([]Player, error) {
	if db == nil {
		db = r.db
	}
	var players []Player
	if err := db.NewSelect().Model(&players).Order("p.name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("playerdb.ListPlayers: %w", err)
	}
	return players, nil
}

func (r *Impl) UpdatePlayer(ctx context.Context, db bun.IDB, player *Player) error {
	if db == nil {
		db = r.db
	}
	res, err := db.NewUpdate().
		Model(player).
		Column("name", "nickname", "handicap", "avatar_url", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("playerdb.UpdatePlayer: %w", err)
	}
	return expectRows(res, "playerdb.UpdatePlayer")
}

func (r *Impl) DeletePlayer(ctx context.Context, db bun.IDB, id string) error {
	if db == nil {
		db = r.db
	}
	res, err := db.NewDelete().Model((*Player)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("playerdb.DeletePlayer: %w", err)
	}
	return expectRows(res, "playerdb.DeletePlayer")
}

func expectRows(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
