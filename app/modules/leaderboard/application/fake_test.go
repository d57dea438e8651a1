package leaderboardservice

import (
	"context"
	"fmt"
	"sync"

	rounddb "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/repositories"
)

// FakeRoundLoader serves RoundData from a map and counts loads per round.
// It is called from several goroutines at once.
type FakeRoundLoader struct {
	mu    sync.Mutex
	Data  map[string]*RoundData
	Err   error
	loads map[string]int
}

func (f *FakeRoundLoader) LoadRound(_ context.Context, round *rounddb.Round) (*RoundData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loads == nil {
		f.loads = make(map[string]int)
	}
	f.loads[round.ID]++
	if f.Err != nil {
		return nil, f.Err
	}
	data, ok := f.Data[round.ID]
	if !ok {
		return nil, fmt.Errorf("no data for round %s", round.ID)
	}
	return data, nil
}

// Loads returns how many times round was loaded.
func (f *FakeRoundLoader) Loads(roundID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads[roundID]
}
