package rounddb

import (
	"context"
	"time"

	coursedb "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Round is one day's play on a course. Only complete rounds count toward the
// standings. UpdatedAt moves on every score or achievement write so derived
// points can be cached against it.
type Round struct {
	bun.BaseModel `bun:"table:rounds,alias:r"`
	ID            string           `bun:"id,pk" json:"id"`
	CourseID      string           `bun:"course_id,notnull" json:"course_id"`
	RoundDate     time.Time        `bun:"round_date,notnull" json:"round_date"`
	RoundNumber   int              `bun:"round_number,notnull,unique" json:"round_number"`
	IsComplete    bool             `bun:"is_complete,notnull" json:"is_complete"`
	CompletedAt   time.Time        `bun:"completed_at,nullzero" json:"completed_at,omitempty"`
	CreatedAt     time.Time        `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time        `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
	Course        *coursedb.Course `bun:"rel:belongs-to,join:course_id=id" json:"course,omitempty"`
}

var _ bun.BeforeAppendModelHook = (*Round)(nil)

func (r *Round) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		now := time.Now().UTC()
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		r.UpdatedAt = now
	case *bun.UpdateQuery:
		r.UpdatedAt = time.Now().UTC()
	}
	return nil
}
