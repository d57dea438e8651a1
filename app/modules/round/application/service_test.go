package roundservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Black-And-White-Club/trip-scorer/app/events"
	coursedb "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories"
	playerdb "github.com/Black-And-White-Club/trip-scorer/app/modules/player/infrastructure/repositories"
	rounddb "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/repositories"
	roundtime "github.com/Black-And-White-Club/trip-scorer/app/modules/round/time_utils"
	scoredb "github.com/Black-And-White-Club/trip-scorer/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/internal/testutils"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

var now = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

type fixture struct {
	repo    *rounddb.FakeRepository
	courses *coursedb.FakeRepository
	roster  *playerdb.FakeRepository
	scores  *scoredb.FakeRepository
	pub     *testutils.RecordingPublisher
	svc     *RoundService
}

func newFixture() *fixture {
	f := &fixture{
		repo:    &rounddb.FakeRepository{},
		courses: &coursedb.FakeRepository{},
		roster:  &playerdb.FakeRepository{},
		scores:  &scoredb.FakeRepository{},
		pub:     testutils.NewRecordingPublisher(),
	}
	f.courses.GetCourseFn = func(_ context.Context, _ bun.IDB, id string) (*coursedb.Course, error) {
		if id != "c1" {
			return nil, coursedb.ErrNotFound
		}
		return &coursedb.Course{ID: "c1", Name: "Dunes", NumHoles: 3, Holes: []*coursedb.Hole{
			{ID: "h1", HoleNumber: 1, Par: 4},
			{ID: "h2", HoleNumber: 2, Par: 3},
			{ID: "h3", HoleNumber: 3, Par: 5},
		}}, nil
	}
	f.roster.ListPlayersFn = func(context.Context, bun.IDB) ([]playerdb.Player, error) {
		return []playerdb.Player{
			{ID: "p1", Name: "Ann Lee", Nickname: "Annie"},
			{ID: "p2", Name: "Bob"},
		}, nil
	}
	f.repo.GetRoundFn = func(_ context.Context, _ bun.IDB, id string) (*rounddb.Round, error) {
		if id != "r1" {
			return nil, rounddb.ErrNotFound
		}
		return &rounddb.Round{ID: "r1", CourseID: "c1", RoundNumber: 2}, nil
	}
	f.svc = NewRoundService(f.repo, f.courses, f.roster, f.scores, f.pub, observability.NewNop(), nil,
		WithClock(roundtime.FixedClock(now)))
	return f
}

func TestRoundService_CreateRound(t *testing.T) {
	tests := []struct {
		name        string
		req         CreateRoundRequest
		setup       func(*fixture)
		wantFailure error
		wantErr     bool
		wantNumber  int
		wantDate    time.Time
	}{
		{
			name:       "defaults to next number and today",
			req:        CreateRoundRequest{CourseID: "c1"},
			setup:      func(f *fixture) { f.repo.MaxRoundNumberFn = func(context.Context, bun.IDB) (int, error) { return 3, nil } },
			wantNumber: 4,
			wantDate:   time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "natural language date",
			req:        CreateRoundRequest{CourseID: "c1", RoundDate: "tomorrow", RoundNumber: 7},
			wantNumber: 7,
			wantDate:   time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "missing course id",
			req:         CreateRoundRequest{},
			wantFailure: results.ErrInvalid,
		},
		{
			name:        "unparseable date",
			req:         CreateRoundRequest{CourseID: "c1", RoundDate: "zzz"},
			wantFailure: ErrInvalidRoundDate,
		},
		{
			name:        "unknown course",
			req:         CreateRoundRequest{CourseID: "c9"},
			wantFailure: ErrCourseNotFound,
		},
		{
			name: "round number taken",
			req:  CreateRoundRequest{CourseID: "c1", RoundNumber: 2},
			setup: func(f *fixture) {
				f.repo.ListRoundsFn = func(context.Context, bun.IDB) ([]rounddb.Round, error) {
					return []rounddb.Round{{ID: "r1", RoundNumber: 2}}, nil
				}
			},
			wantFailure: ErrDuplicateRoundNumber,
		},
		{
			name: "store error",
			req:  CreateRoundRequest{CourseID: "c1"},
			setup: func(f *fixture) {
				f.repo.CreateRoundFn = func(context.Context, bun.IDB, *rounddb.Round) error { return errors.New("db down") }
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			res, err := f.svc.CreateRound(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantFailure != nil {
				require.True(t, res.IsFailure())
				require.ErrorIs(t, *res.Failure, tt.wantFailure)
				return
			}

			round := *res.Success
			require.Equal(t, tt.wantNumber, round.RoundNumber)
			require.True(t, tt.wantDate.Equal(round.RoundDate), "got %s", round.RoundDate)
			require.Equal(t, "Dunes", round.Course.Name)
			require.False(t, round.IsComplete)
		})
	}
}

func TestRoundService_CompleteRound(t *testing.T) {
	t.Run("marks complete and publishes", func(t *testing.T) {
		f := newFixture()
		var markedAt time.Time
		f.repo.MarkCompleteFn = func(_ context.Context, _ bun.IDB, _ string, at time.Time) error {
			markedAt = at
			return nil
		}

		res, err := f.svc.CompleteRound(context.Background(), "r1")
		require.NoError(t, err)
		require.True(t, res.IsSuccess())
		require.True(t, (*res.Success).IsComplete)
		require.True(t, now.Equal(markedAt))

		var payload events.RoundCompletedPayloadV1
		f.pub.DecodeLast(t, events.RoundCompletedV1, &payload)
		require.Equal(t, "r1", payload.RoundID)
		require.Equal(t, 2, payload.RoundNumber)
	})

	t.Run("already complete", func(t *testing.T) {
		f := newFixture()
		f.repo.GetRoundFn = func(context.Context, bun.IDB, string) (*rounddb.Round, error) {
			return &rounddb.Round{ID: "r1", IsComplete: true}, nil
		}

		res, err := f.svc.CompleteRound(context.Background(), "r1")
		require.NoError(t, err)
		require.ErrorIs(t, *res.Failure, ErrRoundComplete)
		require.NotContains(t, f.repo.Trace(), "MarkComplete")
		require.Zero(t, f.pub.Count(events.RoundCompletedV1))
	})

	t.Run("missing round", func(t *testing.T) {
		f := newFixture()
		res, err := f.svc.CompleteRound(context.Background(), "nope")
		require.NoError(t, err)
		require.ErrorIs(t, *res.Failure, ErrRoundNotFound)
	})
}

func TestRoundService_DeleteRound(t *testing.T) {
	f := newFixture()
	res, err := f.svc.DeleteRound(context.Background(), "r1")
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	require.Equal(t, 1, f.pub.Count(events.RoundDeletedV1))

	f.repo.DeleteRoundFn = func(context.Context, bun.IDB, string) error { return rounddb.ErrNoRowsAffected }
	res, err = f.svc.DeleteRound(context.Background(), "r1")
	require.NoError(t, err)
	require.ErrorIs(t, *res.Failure, ErrRoundNotFound)
	require.Equal(t, 1, f.pub.Count(events.RoundDeletedV1))
}

func TestRoundService_GetAndList(t *testing.T) {
	f := newFixture()

	res, err := f.svc.GetRound(context.Background(), "r1")
	require.NoError(t, err)
	require.Equal(t, "r1", (*res.Success).ID)

	res, err = f.svc.GetRound(context.Background(), "r2")
	require.NoError(t, err)
	require.ErrorIs(t, *res.Failure, results.ErrNotFound)

	list, err := f.svc.ListRounds(context.Background())
	require.NoError(t, err)
	require.NotNil(t, *list.Success)
	require.Empty(t, *list.Success)
}
