package roundservice

import (
	"context"
	"testing"

	"github.com/Black-And-White-Club/trip-scorer/app/events"
	coursedb "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories"
	playerdb "github.com/Black-And-White-Club/trip-scorer/app/modules/player/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/app/modules/round/application/parsers"
	rounddb "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/repositories"
	scoredb "github.com/Black-And-White-Club/trip-scorer/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

const card = `Name,1,2,3,4,Total
Par,4,4,5,3,16
annie,3,3,5,,11
BOB,5,,6,2,13
Carl,4,4,4,4,16
`

func TestRoundService_ImportScorecard(t *testing.T) {
	f := newFixture()
	var written []scoredb.Score
	f.scores.UpsertScoresFn = func(_ context.Context, _ bun.IDB, scores []scoredb.Score) error {
		written = scores
		return nil
	}

	res, err := f.svc.ImportScorecard(context.Background(), "r1", ImportScorecardRequest{FileName: "day2.csv", Data: []byte(card)})
	require.NoError(t, err)
	require.True(t, res.IsSuccess(), "failure: %v", res.Failure)

	want := &ImportSummary{
		RoundID:        "r1",
		Imported:       5,
		PlayerIDs:      []string{"p1", "p2"},
		UnknownPlayers: []string{"Carl"},
		UnknownHoles:   []int{4},
		ParMismatches:  []int{2},
	}
	if diff := cmp.Diff(want, *res.Success); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, written, 5)
	require.Contains(t, f.repo.Trace(), "TouchRound")

	var payload events.ScoreRecordedPayloadV1
	f.pub.DecodeLast(t, events.ScoreRecordedV1, &payload)
	require.Equal(t, SourceImport, payload.Source)
	require.Equal(t, 5, payload.Count)
}

func TestRoundService_ImportScorecard_Failures(t *testing.T) {
	tests := []struct {
		name        string
		roundID     string
		req         ImportScorecardRequest
		setup       func(*fixture)
		wantFailure error
	}{
		{
			name:        "empty upload",
			roundID:     "r1",
			req:         ImportScorecardRequest{FileName: "x.csv"},
			wantFailure: results.ErrInvalid,
		},
		{
			name:        "unsupported extension",
			roundID:     "r1",
			req:         ImportScorecardRequest{FileName: "card.pdf", Data: []byte("x")},
			wantFailure: ErrUnreadableScorecard,
		},
		{
			name:        "no hole columns",
			roundID:     "r1",
			req:         ImportScorecardRequest{FileName: "card.csv", Data: []byte("Name,Score\nAnn,72\n")},
			wantFailure: ErrUnreadableScorecard,
		},
		{
			name:        "missing round",
			roundID:     "r9",
			req:         ImportScorecardRequest{FileName: "card.csv", Data: []byte(card)},
			wantFailure: ErrRoundNotFound,
		},
		{
			name:    "complete round",
			roundID: "r1",
			req:     ImportScorecardRequest{FileName: "card.csv", Data: []byte(card)},
			setup: func(f *fixture) {
				f.repo.GetRoundFn = func(context.Context, bun.IDB, string) (*rounddb.Round, error) {
					return &rounddb.Round{ID: "r1", CourseID: "c1", IsComplete: true}, nil
				}
			},
			wantFailure: ErrRoundComplete,
		},
		{
			name:        "nobody matches",
			roundID:     "r1",
			req:         ImportScorecardRequest{FileName: "card.csv", Data: []byte("Name,1\nZed,4\n")},
			wantFailure: ErrNothingImported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.setup != nil {
				tt.setup(f)
			}
			res, err := f.svc.ImportScorecard(context.Background(), tt.roundID, tt.req)
			require.NoError(t, err)
			require.True(t, res.IsFailure())
			require.ErrorIs(t, *res.Failure, tt.wantFailure)
			require.Empty(t, f.scores.Trace())
			require.Zero(t, f.pub.Count(events.ScoreRecordedV1))
		})
	}
}

func TestBuildImport_LastRowWins(t *testing.T) {
	sc := &parsers.Scorecard{Players: []parsers.PlayerRow{
		{Name: "Bob", Strokes: map[int]int{1: 6}},
		{Name: " bob ", Strokes: map[int]int{1: 4}},
	}}
	holes := []*coursedb.Hole{{ID: "h1", HoleNumber: 1, Par: 4}}
	players := []playerdb.Player{{ID: "p2", Name: "Bob"}}

	summary, scores := buildImport("r1", sc, holes, players)
	require.Equal(t, 1, summary.Imported)
	require.Equal(t, []scoredb.Score{{RoundID: "r1", PlayerID: "p2", HoleID: "h1", Strokes: 4}}, scores)
}

func TestBuildImport_NameBeatsNickname(t *testing.T) {
	sc := &parsers.Scorecard{Players: []parsers.PlayerRow{{Name: "Ace", Strokes: map[int]int{1: 3}}}}
	holes := []*coursedb.Hole{{ID: "h1", HoleNumber: 1, Par: 4}}
	players := []playerdb.Player{
		{ID: "p1", Name: "Ann", Nickname: "Ace"},
		{ID: "p2", Name: "Ace"},
	}

	_, scores := buildImport("r1", sc, holes, players)
	require.Len(t, scores, 1)
	require.Equal(t, "p2", scores[0].PlayerID)
}
