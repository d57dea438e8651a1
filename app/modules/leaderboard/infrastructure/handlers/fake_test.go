package leaderboardhandlers

import (
	"context"
	"sync"

	leaderboardservice "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/application"
)

type FakeService struct {
	GetLeaderboardFn      func(ctx context.Context) (leaderboardservice.StandingsResult, error)
	GetRoundResultsFn     func(ctx context.Context, roundID string) (leaderboardservice.RoundResultsResult, error)
	GetLeaderboardChartFn func(ctx context.Context) (leaderboardservice.ChartResult, error)

	mu          sync.Mutex
	invalidated []string
}

var _ leaderboardservice.Service = (*FakeService)(nil)

func (f *FakeService) GetLeaderboard(ctx context.Context) (leaderboardservice.StandingsResult, error) {
	if f.GetLeaderboardFn != nil {
		return f.GetLeaderboardFn(ctx)
	}
	return leaderboardservice.StandingsResult{}, nil
}

func (f *FakeService) GetRoundResults(ctx context.Context, roundID string) (leaderboardservice.RoundResultsResult, error) {
	if f.GetRoundResultsFn != nil {
		return f.GetRoundResultsFn(ctx, roundID)
	}
	return leaderboardservice.RoundResultsResult{}, nil
}

func (f *FakeService) GetLeaderboardChart(ctx context.Context) (leaderboardservice.ChartResult, error) {
	if f.GetLeaderboardChartFn != nil {
		return f.GetLeaderboardChartFn(ctx)
	}
	return leaderboardservice.ChartResult{}, nil
}

func (f *FakeService) InvalidateRound(roundID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, roundID)
}

func (f *FakeService) Invalidated() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.invalidated...)
}
