package playerdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository persists players. Every method accepts an optional bun.IDB so
// callers can run it inside their transaction; nil uses the repository's own
// connection.
type Repository interface {
	CreatePlayer(ctx context.Context, db bun.IDB, player *Player) error
	GetPlayer(ctx context.Context, db bun.IDB, id string) (*Player, error)
	ListPlayers(ctx context.Context, db bun.IDB) ([]Player, error)
	UpdatePlayer(ctx context.Context, db bun.IDB, player *Player) error
	DeletePlayer(ctx context.Context, db bun.IDB, id string) error
}
