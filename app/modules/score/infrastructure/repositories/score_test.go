package scoredb_test

import (
	"context"
	"testing"
	"time"

	coursedb "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories"
	playerdb "github.com/Black-And-White-Club/trip-scorer/app/modules/player/infrastructure/repositories"
	rounddb "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/repositories"
	scoredomain "github.com/Black-And-White-Club/trip-scorer/app/modules/score/domain"
	scoredb "github.com/Black-And-White-Club/trip-scorer/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/internal/testutils"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type seed struct {
	round   *rounddb.Round
	holes   []*coursedb.Hole
	players []*playerdb.Player
}

func seedRound(t *testing.T, db *bun.DB) seed {
	t.Helper()
	ctx := context.Background()

	players := []*playerdb.Player{{Name: "Ann"}, {Name: "Bob"}}
	for _, p := range players {
		require.NoError(t, playerdb.NewRepository(db).CreatePlayer(ctx, nil, p))
	}

	course := &coursedb.Course{Name: "Links", NumHoles: 2, Holes: []*coursedb.Hole{
		{HoleNumber: 1, Par: 4},
		{HoleNumber: 2, Par: 3},
	}}
	require.NoError(t, coursedb.NewRepository(db).CreateCourse(ctx, nil, course))

	round := &rounddb.Round{CourseID: course.ID, RoundDate: time.Now().UTC(), RoundNumber: 1}
	require.NoError(t, rounddb.NewRepository(db).CreateRound(ctx, nil, round))

	return seed{round: round, holes: course.Holes, players: players}
}

func TestScoreRepository_UpsertScores(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	s := seedRound(t, db)
	repo := scoredb.NewRepository(db)

	require.NoError(t, repo.UpsertScores(ctx, nil, nil))

	first := []scoredb.Score{
		{RoundID: s.round.ID, PlayerID: s.players[0].ID, HoleID: s.holes[0].ID, Strokes: 5},
		{RoundID: s.round.ID, PlayerID: s.players[1].ID, HoleID: s.holes[0].ID, Strokes: 4, FairwayHit: true},
	}
	require.NoError(t, repo.UpsertScores(ctx, nil, first))

	again := []scoredb.Score{
		{RoundID: s.round.ID, PlayerID: s.players[0].ID, HoleID: s.holes[0].ID, Strokes: 3, GIR: true},
	}
	require.NoError(t, repo.UpsertScores(ctx, nil, again))

	scores, err := repo.ListScoresByRound(ctx, nil, s.round.ID)
	require.NoError(t, err)
	require.Len(t, scores, 2)

	byPlayer := map[string]scoredb.Score{}
	for _, sc := range scores {
		byPlayer[sc.PlayerID] = sc
	}
	require.Equal(t, 3, byPlayer[s.players[0].ID].Strokes)
	require.True(t, byPlayer[s.players[0].ID].GIR)
	require.True(t, byPlayer[s.players[1].ID].FairwayHit)

	n, err := repo.CountScoresForPlayer(ctx, nil, s.players[0].ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	bad := []scoredb.Score{{RoundID: s.round.ID, PlayerID: "ghost", HoleID: s.holes[0].ID, Strokes: 4}}
	require.Error(t, repo.UpsertScores(ctx, nil, bad), "foreign keys are enforced")
}

func TestScoreRepository_UpsertScoresKeepsFlagsInMixedBatch(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	s := seedRound(t, db)
	repo := scoredb.NewRepository(db)

	batch := []scoredb.Score{
		{RoundID: s.round.ID, PlayerID: s.players[0].ID, HoleID: s.holes[0].ID, Strokes: 5},
		{RoundID: s.round.ID, PlayerID: s.players[1].ID, HoleID: s.holes[0].ID, Strokes: 4, FairwayHit: true, GIR: true},
		{RoundID: s.round.ID, PlayerID: s.players[0].ID, HoleID: s.holes[1].ID, Strokes: 3, GIR: true},
		{RoundID: s.round.ID, PlayerID: s.players[1].ID, HoleID: s.holes[1].ID, Strokes: 4, FairwayHit: true},
	}
	require.NoError(t, repo.UpsertScores(ctx, nil, batch))

	var raw []struct {
		PlayerID   string `bun:"player_id"`
		HoleID     string `bun:"hole_id"`
		FairwayHit bool   `bun:"fairway_hit"`
		GIR        bool   `bun:"gir"`
	}
	require.NoError(t, db.NewSelect().
		Table("scores").
		Column("player_id", "hole_id", "fairway_hit", "gir").
		Scan(ctx, &raw))
	require.Len(t, raw, 4)

	type flags struct{ fairway, gir bool }
	got := map[[2]string]flags{}
	for _, r := range raw {
		got[[2]string{r.PlayerID, r.HoleID}] = flags{r.FairwayHit, r.GIR}
	}
	for _, want := range batch {
		key := [2]string{want.PlayerID, want.HoleID}
		require.Equal(t, flags{want.FairwayHit, want.GIR}, got[key], "player %s hole %s", want.PlayerID, want.HoleID)
	}
}

func TestScoreRepository_Achievements(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	s := seedRound(t, db)
	repo := scoredb.NewRepository(db)

	ctp := &scoredb.Achievement{RoundID: s.round.ID, HoleID: s.holes[1].ID, PlayerID: s.players[0].ID, AchievementType: scoredomain.AchievementClosestToPin}
	require.NoError(t, repo.UpsertAchievement(ctx, nil, ctp))
	require.NotEmpty(t, ctp.ID)

	replacement := &scoredb.Achievement{RoundID: s.round.ID, HoleID: s.holes[1].ID, PlayerID: s.players[1].ID, AchievementType: scoredomain.AchievementClosestToPin}
	require.NoError(t, repo.UpsertAchievement(ctx, nil, replacement))

	drive := &scoredb.Achievement{RoundID: s.round.ID, HoleID: s.holes[0].ID, PlayerID: s.players[0].ID, AchievementType: scoredomain.AchievementLongestDrive}
	require.NoError(t, repo.UpsertAchievement(ctx, nil, drive))

	list, err := repo.ListAchievementsByRound(ctx, nil, s.round.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, scoredomain.AchievementClosestToPin, list[0].AchievementType)
	require.Equal(t, s.players[1].ID, list[0].PlayerID)

	got, err := repo.GetAchievement(ctx, nil, drive.ID)
	require.NoError(t, err)
	require.Equal(t, s.holes[0].ID, got.HoleID)

	require.NoError(t, repo.DeleteAchievement(ctx, nil, drive.ID))
	_, err = repo.GetAchievement(ctx, nil, drive.ID)
	require.ErrorIs(t, err, scoredb.ErrNotFound)
	require.ErrorIs(t, repo.DeleteAchievement(ctx, nil, drive.ID), scoredb.ErrNoRowsAffected)
}

func TestScoreRepository_RoundDeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	s := seedRound(t, db)
	repo := scoredb.NewRepository(db)

	require.NoError(t, repo.UpsertScores(ctx, nil, []scoredb.Score{
		{RoundID: s.round.ID, PlayerID: s.players[0].ID, HoleID: s.holes[0].ID, Strokes: 4},
	}))
	require.NoError(t, repo.UpsertAchievement(ctx, nil, &scoredb.Achievement{
		RoundID: s.round.ID, HoleID: s.holes[0].ID, PlayerID: s.players[0].ID, AchievementType: scoredomain.AchievementLongestDrive,
	}))

	require.NoError(t, rounddb.NewRepository(db).DeleteRound(ctx, nil, s.round.ID))

	scores, err := repo.ListScoresByRound(ctx, nil, s.round.ID)
	require.NoError(t, err)
	require.Empty(t, scores)
	achievements, err := repo.ListAchievementsByRound(ctx, nil, s.round.ID)
	require.NoError(t, err)
	require.Empty(t, achievements)
}
