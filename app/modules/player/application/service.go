package playerservice

import (
	"context"
	"errors"
	"strings"

	playerdb "github.com/Black-And-White-Club/trip-scorer/app/modules/player/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/internal/operation"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
)

// PlayerService implements Service.
type PlayerService struct {
	repo      playerdb.Repository
	activity  ScoreActivity
	telemetry operation.Telemetry
	db        *bun.DB
}

var _ Service = (*PlayerService)(nil)

// NewPlayerService creates a new PlayerService.
func NewPlayerService(repo playerdb.Repository, activity ScoreActivity, obs observability.Observability, db *bun.DB) *PlayerService {
	return &PlayerService{
		repo:      repo,
		activity:  activity,
		telemetry: operation.NewTelemetry("player", obs),
		db:        db,
	}
}

func (s *PlayerService) CreatePlayer(ctx context.Context, req CreatePlayerRequest) (PlayerResult, error) {
	return operation.Run(ctx, s.telemetry, "CreatePlayer", nil, func(ctx context.Context) (PlayerResult, error) {
		if err := httpapi.Validate(req); err != nil {
			return results.FailureResult[*playerdb.Player, error](err), nil
		}

		return operation.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (PlayerResult, error) {
			taken, err := s.nameTaken(ctx, db, req.Name, "")
			if err != nil {
				return PlayerResult{}, err
			}
			if taken {
				return results.FailureResult[*playerdb.Player, error](ErrDuplicateName), nil
			}

			player := &playerdb.Player{}
			applyRequest(player, req)
			if err := s.repo.CreatePlayer(ctx, db, player); err != nil {
				return PlayerResult{}, err
			}
			return results.SuccessResult[*playerdb.Player, error](player), nil
		})
	})
}

func (s *PlayerService) GetPlayer(ctx context.Context, id string) (PlayerResult, error) {
	return operation.Run(ctx, s.telemetry, "GetPlayer", attrs(id), func(ctx context.Context) (PlayerResult, error) {
		player, err := s.repo.GetPlayer(ctx, nil, id)
		if errors.Is(err, playerdb.ErrNotFound) {
			return results.FailureResult[*playerdb.Player, error](ErrPlayerNotFound), nil
		}
		if err != nil {
			return PlayerResult{}, err
		}
		return results.SuccessResult[*playerdb.Player, error](player), nil
	})
}

func (s *PlayerService) ListPlayers(ctx context.Context) (results.OperationResult[[]playerdb.Player, error], error) {
	return operation.Run(ctx, s.telemetry, "ListPlayers", nil, func(ctx context.Context) (results.OperationResult[[]playerdb.Player, error], error) {
		players, err := s.repo.ListPlayers(ctx, nil)
		if err != nil {
			return results.OperationResult[[]playerdb.Player, error]{}, err
		}
		if players == nil {
			players = []playerdb.Player{}
		}
		return results.SuccessResult[[]playerdb.Player, error](players), nil
	})
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, id string, req UpdatePlayerRequest) (PlayerResult, error) {
	return operation.Run(ctx, s.telemetry, "UpdatePlayer", attrs(id), func(ctx context.Context) (PlayerResult, error) {
		if err := httpapi.Validate(req); err != nil {
			return results.FailureResult[*playerdb.Player, error](err), nil
		}

		return operation.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (PlayerResult, error) {
			player, err := s.repo.GetPlayer(ctx, db, id)
			if errors.Is(err, playerdb.ErrNotFound) {
				return results.FailureResult[*playerdb.Player, error](ErrPlayerNotFound), nil
			}
			if err != nil {
				return PlayerResult{}, err
			}

			taken, err := s.nameTaken(ctx, db, req.Name, id)
			if err != nil {
				return PlayerResult{}, err
			}
			if taken {
				return results.FailureResult[*playerdb.Player, error](ErrDuplicateName), nil
			}

			applyRequest(player, req)
			if err := s.repo.UpdatePlayer(ctx, db, player); err != nil {
				return PlayerResult{}, err
			}
			return results.SuccessResult[*playerdb.Player, error](player), nil
		})
	})
}

func (s *PlayerService) DeletePlayer(ctx context.Context, id string) (results.OperationResult[bool, error], error) {
	return operation.Run(ctx, s.telemetry, "DeletePlayer", attrs(id), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return operation.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
			if s.activity != nil {
				n, err := s.activity.CountScoresForPlayer(ctx, db, id)
				if err != nil {
					return results.OperationResult[bool, error]{}, err
				}
				if n > 0 {
					return results.FailureResult[bool, error](ErrPlayerHasScores), nil
				}
			}

			err := s.repo.DeletePlayer(ctx, db, id)
			if errors.Is(err, playerdb.ErrNoRowsAffected) {
				return results.FailureResult[bool, error](ErrPlayerNotFound), nil
			}
			if err != nil {
				return results.OperationResult[bool, error]{}, err
			}
			return results.SuccessResult[bool, error](true), nil
		})
	})
}

// nameTaken reports whether another player already uses name, ignoring case.
func (s *PlayerService) nameTaken(ctx context.Context, db bun.IDB, name, exceptID string) (bool, error) {
	players, err := s.repo.ListPlayers(ctx, db)
	if err != nil {
		return false, err
	}
	for _, p := range players {
		if p.ID != exceptID && strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return true, nil
		}
	}
	return false, nil
}

func applyRequest(p *playerdb.Player, req CreatePlayerRequest) {
	p.Name = strings.TrimSpace(req.Name)
	p.Nickname = strings.TrimSpace(req.Nickname)
	p.Handicap = req.Handicap
	p.AvatarURL = strings.TrimSpace(req.AvatarURL)
}

func attrs(playerID string) []attribute.KeyValue {
	return []attribute.KeyValue{operation.Attr(observability.FieldPlayerID, playerID)}
}
