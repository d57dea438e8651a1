package scoredb

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

// NewRepository creates a new score repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) UpsertScores(ctx context.Context, db bun.IDB, scores []Score) error {
	if len(scores) == 0 {
		return nil
	}
	if db == nil {
		db = r.db
	}
	_, err := db.NewInsert().
		Model(&scores).
		On("CONFLICT (round_id, player_id, hole_id) DO UPDATE").
		Set("strokes = EXCLUDED.strokes").
		Set("fairway_hit = EXCLUDED.fairway_hit").
		Set("gir = EXCLUDED.gir").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("scoredb.UpsertScores: %w", err)
	}
	return nil
}

func (r *Impl) ListScoresByRound(ctx context.Context, db bun.IDB, roundID string) ([]Score, error) {
	if db == nil {
		db = r.db
	}
	var scores []Score
	err := db.NewSelect().
		Model(&scores).
		Where("s.round_id = ?", roundID).
		Order("s.player_id ASC", "s.hole_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scoredb.ListScoresByRound: %w", err)
	}
	return scores, nil
}

func (r *Impl) CountScoresForPlayer(ctx context.Context, db bun.IDB, playerID string) (int, error) {
	if db == nil {
		db = r.db
	}
	n, err := db.NewSelect().Model((*Score)(nil)).Where("s.player_id = ?", playerID).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("scoredb.CountScoresForPlayer: %w", err)
	}
	return n, nil
}

func (r *Impl) UpsertAchievement(ctx context.Context, db bun.IDB, achievement *Achievement) error {
	if db == nil {
		db = r.db
	}
	_, err := db.NewInsert().
		Model(achievement).
		On("CONFLICT (round_id, hole_id, achievement_type) DO UPDATE").
		Set("player_id = EXCLUDED.player_id").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("scoredb.UpsertAchievement: %w", err)
	}
	return nil
}

func (r *Impl) ListAchievementsByRound(ctx context.Context, db bun.IDB, roundID string) ([]Achievement, error) {
	if db == nil {
		db = r.db
	}
	var achievements []Achievement
	err := db.NewSelect().
		Model(&achievements).
		Where("a.round_id = ?", roundID).
		Order("a.achievement_type ASC", "a.hole_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scoredb.ListAchievementsByRound: %w", err)
	}
	return achievements, nil
}

func (r *Impl) GetAchievement(ctx context.Context, db bun.IDB, id string) (*Achievement, error) {
	if db == nil {
		db = r.db
	}
	achievement := new(Achievement)
	if err := db.NewSelect().Model(achievement).Where("a.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scoredb.GetAchievement: %w", err)
	}
	return achievement, nil
}

func (r *Impl) DeleteAchievement(ctx context.Context, db bun.IDB, id string) error {
	if db == nil {
		db = r.db
	}
	res, err := db.NewDelete().Model((*Achievement)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("scoredb.DeleteAchievement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("scoredb.DeleteAchievement: %w", err)
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
