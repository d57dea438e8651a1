package playerservice

import (
	"context"
	"errors"
	"testing"

	playerdb "github.com/Black-And-White-Club/trip-scorer/app/modules/player/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type fakeActivity struct {
	count int
	err   error
}

func (f fakeActivity) CountScoresForPlayer(context.Context, bun.IDB, string) (int, error) {
	return f.count, f.err
}

func newTestService(repo *playerdb.FakeRepository, activity ScoreActivity) *PlayerService {
	return NewPlayerService(repo, activity, observability.NewNop(), nil)
}

func TestPlayerService_CreatePlayer(t *testing.T) {
	tests := []struct {
		name        string
		req         CreatePlayerRequest
		setup       func(*playerdb.FakeRepository)
		wantFailure error
		wantErr     bool
		wantTrace   []string
	}{
		{
			name: "creates trimmed player",
			req:  CreatePlayerRequest{Name: "  Sam Snead ", Nickname: "Slammin'", Handicap: 4},
			setup: func(r *playerdb.FakeRepository) {
				r.CreatePlayerFn = func(_ context.Context, _ bun.IDB, p *playerdb.Player) error {
					if p.Name != "Sam Snead" {
						return errors.New("name not trimmed")
					}
					p.ID = "p1"
					return nil
				}
			},
			wantTrace: []string{"ListPlayers", "CreatePlayer"},
		},
		{
			name:        "missing name",
			req:         CreatePlayerRequest{},
			wantFailure: results.ErrInvalid,
		},
		{
			name:        "handicap out of range",
			req:         CreatePlayerRequest{Name: "X", Handicap: 60},
			wantFailure: results.ErrInvalid,
		},
		{
			name: "duplicate name ignoring case",
			req:  CreatePlayerRequest{Name: "sam snead"},
			setup: func(r *playerdb.FakeRepository) {
				r.ListPlayersFn = func(context.Context, bun.IDB) ([]playerdb.Player, error) {
					return []playerdb.Player{{ID: "p1", Name: "Sam Snead"}}, nil
				}
			},
			wantFailure: ErrDuplicateName,
			wantTrace:   []string{"ListPlayers"},
		},
		{
			name: "repository error",
			req:  CreatePlayerRequest{Name: "Ben"},
			setup: func(r *playerdb.FakeRepository) {
				r.CreatePlayerFn = func(context.Context, bun.IDB, *playerdb.Player) error {
					return errors.New("db down")
				}
			},
			wantErr:   true,
			wantTrace: []string{"ListPlayers", "CreatePlayer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &playerdb.FakeRepository{}
			if tt.setup != nil {
				tt.setup(repo)
			}
			svc := newTestService(repo, nil)

			res, err := svc.CreatePlayer(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), "CreatePlayer")
			} else {
				require.NoError(t, err)
			}

			switch {
			case tt.wantFailure != nil:
				require.True(t, res.IsFailure())
				require.ErrorIs(t, *res.Failure, tt.wantFailure)
			case !tt.wantErr:
				require.True(t, res.IsSuccess())
				require.Equal(t, "p1", (*res.Success).ID)
			}

			if tt.wantTrace != nil {
				require.Equal(t, tt.wantTrace, repo.Trace())
			}
		})
	}
}

func TestPlayerService_GetPlayer(t *testing.T) {
	repo := &playerdb.FakeRepository{
		GetPlayerFn: func(_ context.Context, _ bun.IDB, id string) (*playerdb.Player, error) {
			if id == "p1" {
				return &playerdb.Player{ID: "p1", Name: "Ann"}, nil
			}
			return nil, playerdb.ErrNotFound
		},
	}
	svc := newTestService(repo, nil)

	res, err := svc.GetPlayer(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "Ann", (*res.Success).Name)

	res, err = svc.GetPlayer(context.Background(), "nope")
	require.NoError(t, err)
	require.ErrorIs(t, *res.Failure, results.ErrNotFound)
}

func TestPlayerService_ListPlayers_NeverNil(t *testing.T) {
	svc := newTestService(&playerdb.FakeRepository{}, nil)

	res, err := svc.ListPlayers(context.Background())
	require.NoError(t, err)
	require.NotNil(t, *res.Success)
	require.Empty(t, *res.Success)
}

func TestPlayerService_UpdatePlayer(t *testing.T) {
	existing := []playerdb.Player{{ID: "p1", Name: "Ann"}, {ID: "p2", Name: "Bea"}}
	newRepo := func() *playerdb.FakeRepository {
		return &playerdb.FakeRepository{
			GetPlayerFn: func(_ context.Context, _ bun.IDB, id string) (*playerdb.Player, error) {
				for _, p := range existing {
					if p.ID == id {
						p := p
						return &p, nil
					}
				}
				return nil, playerdb.ErrNotFound
			},
			ListPlayersFn: func(context.Context, bun.IDB) ([]playerdb.Player, error) {
				return existing, nil
			},
		}
	}

	t.Run("keeps own name", func(t *testing.T) {
		repo := newRepo()
		res, err := newTestService(repo, nil).UpdatePlayer(context.Background(), "p1", UpdatePlayerRequest{Name: "ANN", Handicap: 3})
		require.NoError(t, err)
		require.True(t, res.IsSuccess())
		require.Equal(t, "ANN", (*res.Success).Name)
		require.Equal(t, []string{"GetPlayer", "ListPlayers", "UpdatePlayer"}, repo.Trace())
	})

	t.Run("rejects another player's name", func(t *testing.T) {
		res, err := newTestService(newRepo(), nil).UpdatePlayer(context.Background(), "p1", UpdatePlayerRequest{Name: "bea"})
		require.NoError(t, err)
		require.ErrorIs(t, *res.Failure, ErrDuplicateName)
	})

	t.Run("missing player", func(t *testing.T) {
		res, err := newTestService(newRepo(), nil).UpdatePlayer(context.Background(), "p9", UpdatePlayerRequest{Name: "Cal"})
		require.NoError(t, err)
		require.ErrorIs(t, *res.Failure, results.ErrNotFound)
	})
}

func TestPlayerService_DeletePlayer(t *testing.T) {
	tests := []struct {
		name        string
		activity    ScoreActivity
		deleteErr   error
		wantFailure error
		wantErr     bool
	}{
		{name: "deletes idle player", activity: fakeActivity{}},
		{name: "blocked by scores", activity: fakeActivity{count: 3}, wantFailure: ErrPlayerHasScores},
		{name: "missing player", activity: fakeActivity{}, deleteErr: playerdb.ErrNoRowsAffected, wantFailure: ErrPlayerNotFound},
		{name: "activity lookup fails", activity: fakeActivity{err: errors.New("boom")}, wantErr: true},
		{name: "no activity port", activity: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &playerdb.FakeRepository{
				DeletePlayerFn: func(context.Context, bun.IDB, string) error { return tt.deleteErr },
			}
			res, err := newTestService(repo, tt.activity).DeletePlayer(context.Background(), "p1")
			if tt.wantErr {
				require.Error(t, err)
				require.Empty(t, repo.Trace())
				return
			}
			require.NoError(t, err)
			if tt.wantFailure != nil {
				require.ErrorIs(t, *res.Failure, tt.wantFailure)
				return
			}
			require.True(t, *res.Success)
		})
	}
}
