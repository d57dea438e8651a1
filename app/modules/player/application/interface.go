package playerservice

import (
	"context"

	playerdb "github.com/Black-And-White-Club/trip-scorer/app/modules/player/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/uptrace/bun"
)

// PlayerResult is the outcome of a single-player operation.
type PlayerResult = results.OperationResult[*playerdb.Player, error]

// Service manages the trip roster.
type Service interface {
	CreatePlayer(ctx context.Context, req CreatePlayerRequest) (PlayerResult, error)
	GetPlayer(ctx context.Context, id string) (PlayerResult, error)
	ListPlayers(ctx context.Context) (results.OperationResult[[]playerdb.Player, error], error)
	UpdatePlayer(ctx context.Context, id string, req UpdatePlayerRequest) (PlayerResult, error)
	DeletePlayer(ctx context.Context, id string) (results.OperationResult[bool, error], error)
}

// ScoreActivity reports whether a player has recorded scores.
type ScoreActivity interface {
	CountScoresForPlayer(ctx context.Context, db bun.IDB, playerID string) (int, error)
}

// CreatePlayerRequest is the body of a create call.
type CreatePlayerRequest struct {
	Name      string  `json:"name" validate:"required,max=80"`
	Nickname  string  `json:"nickname" validate:"max=40"`
	Handicap  float64 `json:"handicap" validate:"gte=0,lte=54"`
	AvatarURL string  `json:"avatar_url" validate:"omitempty,url"`
}

// UpdatePlayerRequest replaces a player's editable fields.
type UpdatePlayerRequest = CreatePlayerRequest
