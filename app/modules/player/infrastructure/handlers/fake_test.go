package playerhandlers

import (
	"context"

	playerservice "github.com/Black-And-White-Club/trip-scorer/app/modules/player/application"
	playerdb "github.com/Black-And-White-Club/trip-scorer/app/modules/player/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
)

// FakeService is a programmable playerservice.Service.
type FakeService struct {
	CreatePlayerFunc func(ctx context.Context, req playerservice.CreatePlayerRequest) (playerservice.PlayerResult, error)
	GetPlayerFunc    func(ctx context.Context, id string) (playerservice.PlayerResult, error)
	ListPlayersFunc  func(ctx context.Context) (results.OperationResult[[]playerdb.Player, error], error)
	UpdatePlayerFunc func(ctx context.Context, id string, req playerservice.UpdatePlayerRequest) (playerservice.PlayerResult, error)
	DeletePlayerFunc func(ctx context.Context, id string) (results.OperationResult[bool, error], error)
}

var _ playerservice.Service = (*FakeService)(nil)

func (f *FakeService) CreatePlayer(ctx context.Context, req playerservice.CreatePlayerRequest) (playerservice.PlayerResult, error) {
	return f.CreatePlayerFunc(ctx, req)
}

func (f *FakeService) GetPlayer(ctx context.Context, id string) (playerservice.PlayerResult, error) {
	return f.GetPlayerFunc(ctx, id)
}

func (f *FakeService) ListPlayers(ctx context.Context) (results.OperationResult[[]playerdb.Player, error], error) {
	return f.ListPlayersFunc(ctx)
}

func (f *FakeService) UpdatePlayer(ctx context.Context, id string, req playerservice.UpdatePlayerRequest) (playerservice.PlayerResult, error) {
	return f.UpdatePlayerFunc(ctx, id, req)
}

func (f *FakeService) DeletePlayer(ctx context.Context, id string) (results.OperationResult[bool, error], error) {
	return f.DeletePlayerFunc(ctx, id)
}
