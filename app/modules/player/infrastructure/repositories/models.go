package playerdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Player is a trip participant.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`
	ID            string    `bun:"id,pk" json:"id"`
	Name          string    `bun:"name,notnull,unique" json:"name"`
	Nickname      string    `bun:"nickname,nullzero" json:"nickname,omitempty"`
	Handicap      float64   `bun:"handicap,notnull" json:"handicap"`
	AvatarURL     string    `bun:"avatar_url,nullzero" json:"avatar_url,omitempty"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

var _ bun.BeforeAppendModelHook = (*Player)(nil)

// BeforeAppendModel assigns an id on insert and stamps updated_at.
func (p *Player) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		now := time.Now().UTC()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
	case *bun.UpdateQuery:
		p.UpdatedAt = time.Now().UTC()
	}
	return nil
}
