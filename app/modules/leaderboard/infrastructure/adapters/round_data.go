package adapters

import (
	"context"
	"fmt"

	coursedb "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories"
	leaderboardservice "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/domain"
	rounddb "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/repositories"
	scoredomain "github.com/Black-And-White-Club/trip-scorer/app/modules/score/domain"
	scoredb "github.com/Black-And-White-Club/trip-scorer/app/modules/score/infrastructure/repositories"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"
)

// ScoreReader is the part of the score store the leaderboard reads.
type ScoreReader interface {
	ListScoresByRound(ctx context.Context, db bun.IDB, roundID string) ([]scoredb.Score, error)
	ListAchievementsByRound(ctx context.Context, db bun.IDB, roundID string) ([]scoredb.Achievement, error)
}

// HoleReader lists a course's holes.
type HoleReader interface {
	ListHoles(ctx context.Context, db bun.IDB, courseID string) ([]coursedb.Hole, error)
}

// RoundDataAdapter adapts the score and course stores to the leaderboard
// service's RoundLoader port.
type RoundDataAdapter struct {
	scores ScoreReader
	holes  HoleReader
}

var _ leaderboardservice.RoundLoader = (*RoundDataAdapter)(nil)

func NewRoundDataAdapter(scores ScoreReader, holes HoleReader) *RoundDataAdapter {
	return &RoundDataAdapter{scores: scores, holes: holes}
}

// LoadRound reads the round's scores, achievements and course holes
// concurrently and converts them to domain values.
func (a *RoundDataAdapter) LoadRound(ctx context.Context, round *rounddb.Round) (*leaderboardservice.RoundData, error) {
	var (
		scores       []scoredb.Score
		achievements []scoredb.Achievement
		holes        []coursedb.Hole
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		scores, err = a.scores.ListScoresByRound(gctx, nil, round.ID)
		return err
	})
	g.Go(func() (err error) {
		achievements, err = a.scores.ListAchievementsByRound(gctx, nil, round.ID)
		return err
	})
	g.Go(func() (err error) {
		holes, err = a.holes.ListHoles(gctx, nil, round.CourseID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load round %s: %w", round.ID, err)
	}

	data := &leaderboardservice.RoundData{
		Scores:       make([]scoredomain.Score, len(scores)),
		Holes:        make([]scoredomain.Hole, len(holes)),
		Achievements: toRoundAchievements(achievements),
	}
	for i, s := range scores {
		data.Scores[i] = s.ToDomain()
	}
	for i, h := range holes {
		data.Holes[i] = h.ToDomain()
	}
	return data, nil
}

func toRoundAchievements(achievements []scoredb.Achievement) leaderboarddomain.RoundAchievements {
	var out leaderboarddomain.RoundAchievements
	for _, a := range achievements {
		winner := leaderboarddomain.AchievementWinner{
			HoleID:   scoredomain.HoleID(a.HoleID),
			PlayerID: leaderboarddomain.PlayerID(a.PlayerID),
		}
		switch a.AchievementType {
		case scoredomain.AchievementClosestToPin:
			out.ClosestToPin = append(out.ClosestToPin, winner)
		case scoredomain.AchievementLongestDrive:
			out.LongestDrive = append(out.LongestDrive, winner)
		}
	}
	return out
}
