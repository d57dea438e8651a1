package rounddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Impl implements Repository on bun.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new round repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) CreateRound(ctx context.Context, db bun.IDB, round *Round) error {
	if db == nil {
		db = r.db
	}
	if _, err := db.NewInsert().Model(round).Exec(ctx); err != nil {
		return fmt.Errorf("rounddb.CreateRound: %w", err)
	}
	return nil
}

func (r *Impl) GetRound(ctx context.Context, db bun.IDB, id string) (*Round, error) {
	if db == nil {
		db = r.db
	}
	round := new(Round)
	err := db.NewSelect().
		Model(round).
		Relation("Course").
		Where("r.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("rounddb.GetRound: %w", err)
	}
	return round, nil
}

func (r *Impl) ListRounds(ctx context.Context, db bun.IDB) ([]Round, error) {
	if db == nil {
		db = r.db
	}
	var rounds []Round
	err := db.NewSelect().
		Model(&rounds).
		Relation("Course").
		Order("r.round_number DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("rounddb.ListRounds: %w", err)
	}
	return rounds, nil
}

func (r *Impl) ListCompletedRounds(ctx context.Context, db bun.IDB) ([]Round, error) {
	if db == nil {
		db = r.db
	}
	var rounds []Round
	err := db.NewSelect().
		Model(&rounds).
		Where("r.is_complete = ?", true).
		Order("r.round_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("rounddb.ListCompletedRounds: %w", err)
	}
	return rounds, nil
}

func (r *Impl) MarkComplete(ctx context.Context, db bun.IDB, id string, at time.Time) error {
	if db == nil {
		db = r.db
	}
	res, err := db.NewUpdate().
		Model((*Round)(nil)).
		Set("is_complete = ?", true).
		Set("completed_at = ?", at.UTC()).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rounddb.MarkComplete: %w", err)
	}
	return expectRows(res, "rounddb.MarkComplete")
}

func (r *Impl) DeleteRound(ctx context.Context, db bun.IDB, id string) error {
	if db == nil {
		db = r.db
	}
	res, err := db.NewDelete().Model((*Round)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("rounddb.DeleteRound: %w", err)
	}
	return expectRows(res, "rounddb.DeleteRound")
}

func (r *Impl) TouchRound(ctx context.Context, db bun.IDB, id string) error {
	if db == nil {
		db = r.db
	}
	res, err := db.NewUpdate().
		Model((*Round)(nil)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rounddb.TouchRound: %w", err)
	}
	return expectRows(res, "rounddb.TouchRound")
}

func (r *Impl) MaxRoundNumber(ctx context.Context, db bun.IDB) (int, error) {
	if db == nil {
		db = r.db
	}
	var highest sql.NullInt64
	err := db.NewSelect().
		Model((*Round)(nil)).
		ColumnExpr("MAX(r.round_number)").
		Scan(ctx, &highest)
	if err != nil {
		return 0, fmt.Errorf("rounddb.MaxRoundNumber: %w", err)
	}
	return int(highest.Int64), nil
}

func (r *Impl) CountRoundsForCourse(ctx context.Context, db bun.IDB, courseID string) (int, error) {
	if db == nil {
		db = r.db
	}
	n, err := db.NewSelect().Model((*Round)(nil)).Where("r.course_id = ?", courseID).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("rounddb.CountRoundsForCourse: %w", err)
	}
	return n, nil
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
