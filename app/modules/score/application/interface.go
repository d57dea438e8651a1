package scoreservice

import (
	"context"

	playerdb "github.com/Black-And-White-Club/trip-scorer/app/modules/player/infrastructure/repositories"
	coursedb "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories"
	rounddb "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/repositories"
	scoredomain "github.com/Black-And-White-Club/trip-scorer/app/modules/score/domain"
	scoredb "github.com/Black-And-White-Club/trip-scorer/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/uptrace/bun"
)

type (
	ScoresResult       = results.OperationResult[[]scoredb.Score, error]
	AchievementResult  = results.OperationResult[*scoredb.Achievement, error]
	AchievementsResult = results.OperationResult[[]scoredb.Achievement, error]
	StatsResult        = results.OperationResult[[]scoredomain.RoundScores, error]
)

// Service records raw hole scores and side-contest winners for a round.
type Service interface {
	RecordScores(ctx context.Context, roundID string, req RecordScoresRequest) (ScoresResult, error)
	ListScores(ctx context.Context, roundID string) (ScoresResult, error)
	RecordAchievement(ctx context.Context, roundID string, req RecordAchievementRequest) (AchievementResult, error)
	ListAchievements(ctx context.Context, roundID string) (AchievementsResult, error)
	DeleteAchievement(ctx context.Context, id string) (results.OperationResult[bool, error], error)
	GetRoundStats(ctx context.Context, roundID string) (StatsResult, error)
}

// RoundLookup is the slice of the round store the score service needs.
type RoundLookup interface {
	GetRound(ctx context.Context, db bun.IDB, id string) (*rounddb.Round, error)
	TouchRound(ctx context.Context, db bun.IDB, id string) error
}

// HoleLookup resolves a course's holes.
type HoleLookup interface {
	ListHoles(ctx context.Context, db bun.IDB, courseID string) ([]coursedb.Hole, error)
}

// Roster lists the trip's players.
type Roster interface {
	ListPlayers(ctx context.Context, db bun.IDB) ([]playerdb.Player, error)
}

// RecordScoresRequest upserts a batch of hole scores.
type RecordScoresRequest struct {
	Scores []ScoreEntry `json:"scores" validate:"required,min=1,dive"`
}

// ScoreEntry is one player's strokes on one hole, addressed by hole number.
type ScoreEntry struct {
	PlayerID   string `json:"player_id" validate:"required"`
	HoleNumber int    `json:"hole_number" validate:"min=1,max=27"`
	Strokes    int    `json:"strokes" validate:"min=1,max=20"`
	FairwayHit bool   `json:"fairway_hit"`
	GIR        bool   `json:"gir"`
}

// RecordAchievementRequest names the winner of a side contest on a hole.
type RecordAchievementRequest struct {
	PlayerID        string `json:"player_id" validate:"required"`
	HoleNumber      int    `json:"hole_number" validate:"min=1,max=27"`
	AchievementType string `json:"achievement_type" validate:"required,oneof=closest_to_pin longest_drive"`
}
