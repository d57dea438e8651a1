package scoredb

import (
	"context"
	"time"

	scoredomain "github.com/Black-And-White-Club/trip-scorer/app/modules/score/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Score is one player's strokes on one hole of one round.
type Score struct {
	bun.BaseModel `bun:"table:scores,alias:s"`
	ID            string    `bun:"id,pk" json:"id"`
	RoundID       string    `bun:"round_id,notnull,unique:round_player_hole" json:"round_id"`
	PlayerID      string    `bun:"player_id,notnull,unique:round_player_hole" json:"player_id"`
	HoleID        string    `bun:"hole_id,notnull,unique:round_player_hole" json:"hole_id"`
	Strokes       int       `bun:"strokes,notnull" json:"strokes"`
	FairwayHit    bool      `bun:"fairway_hit,notnull" json:"fairway_hit"`
	GIR           bool      `bun:"gir,notnull" json:"gir"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Achievement awards a side contest on one hole of one round.
type Achievement struct {
	bun.BaseModel   `bun:"table:round_achievements,alias:a"`
	ID              string                      `bun:"id,pk" json:"id"`
	RoundID         string                      `bun:"round_id,notnull,unique:round_hole_type" json:"round_id"`
	HoleID          string                      `bun:"hole_id,notnull,unique:round_hole_type" json:"hole_id"`
	PlayerID        string                      `bun:"player_id,notnull" json:"player_id"`
	AchievementType scoredomain.AchievementType `bun:"achievement_type,notnull,unique:round_hole_type" json:"achievement_type"`
	CreatedAt       time.Time                   `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

var (
	_ bun.BeforeAppendModelHook = (*Score)(nil)
	_ bun.BeforeAppendModelHook = (*Achievement)(nil)
)

func (s *Score) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		now := time.Now().UTC()
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		s.UpdatedAt = now
	}
	return nil
}

func (a *Achievement) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = time.Now().UTC()
		}
	}
	return nil
}

// ToDomain converts a stored score to the stats input.
func (s Score) ToDomain() scoredomain.Score {
	return scoredomain.Score{
		HoleID:     scoredomain.HoleID(s.HoleID),
		PlayerID:   scoredomain.PlayerID(s.PlayerID),
		Strokes:    s.Strokes,
		FairwayHit: s.FairwayHit,
		GIR:        s.GIR,
	}
}
