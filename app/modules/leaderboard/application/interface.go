package leaderboardservice

import (
	"context"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/domain"
	playerdb "github.com/Black-And-White-Club/trip-scorer/app/modules/player/infrastructure/repositories"
	rounddb "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/repositories"
	scoredomain "github.com/Black-And-White-Club/trip-scorer/app/modules/score/domain"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/uptrace/bun"
)

type (
	StandingsResult    = results.OperationResult[*Standings, error]
	RoundResultsResult = results.OperationResult[*RoundSheet, error]
	ChartResult        = results.OperationResult[[]byte, error]
)

// Service derives standings and result sheets from raw round data. Nothing
// it returns is stored; every call recomputes from the rounds, reusing
// per-round points while a round is unchanged.
type Service interface {
	GetLeaderboard(ctx context.Context) (StandingsResult, error)
	GetRoundResults(ctx context.Context, roundID string) (RoundResultsResult, error)
	GetLeaderboardChart(ctx context.Context) (ChartResult, error)
	// InvalidateRound drops any memoised points for the round.
	InvalidateRound(roundID string)
}

// RoundSource lists the rounds that feed the standings.
type RoundSource interface {
	GetRound(ctx context.Context, db bun.IDB, id string) (*rounddb.Round, error)
	ListCompletedRounds(ctx context.Context, db bun.IDB) ([]rounddb.Round, error)
}

// RoundLoader fetches a round's raw scores, holes and side-contest winners.
type RoundLoader interface {
	LoadRound(ctx context.Context, round *rounddb.Round) (*RoundData, error)
}

// Roster resolves player names.
type Roster interface {
	ListPlayers(ctx context.Context, db bun.IDB) ([]playerdb.Player, error)
}

// RoundData is the raw input of one round.
type RoundData struct {
	Scores       []scoredomain.Score
	Holes        []scoredomain.Hole
	Achievements leaderboarddomain.RoundAchievements
}

// Standings is the cumulative leaderboard over every complete round.
type Standings struct {
	Entries       []leaderboarddomain.LeaderboardEntry `json:"entries"`
	RoundsCounted int                                  `json:"rounds_counted"`
	// Version changes whenever a counted round is added, removed or edited.
	Version    string    `json:"version"`
	ComputedAt time.Time `json:"computed_at"`
}

// RoundSheet is one round's results.
type RoundSheet struct {
	RoundID     string                          `json:"round_id"`
	RoundNumber int                             `json:"round_number"`
	CourseName  string                          `json:"course_name,omitempty"`
	TotalPar    int                             `json:"total_par"`
	IsComplete  bool                            `json:"is_complete"`
	Results     []leaderboarddomain.RoundResult `json:"results"`
}
