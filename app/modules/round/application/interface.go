package roundservice

import (
	"context"

	coursedb "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories"
	playerdb "github.com/Black-And-White-Club/trip-scorer/app/modules/player/infrastructure/repositories"
	rounddb "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/repositories"
	scoredb "github.com/Black-And-White-Club/trip-scorer/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/uptrace/bun"
)

type (
	RoundResult  = results.OperationResult[*rounddb.Round, error]
	ImportResult = results.OperationResult[*ImportSummary, error]
)

// Service manages the round lifecycle.
type Service interface {
	CreateRound(ctx context.Context, req CreateRoundRequest) (RoundResult, error)
	GetRound(ctx context.Context, id string) (RoundResult, error)
	ListRounds(ctx context.Context) (results.OperationResult[[]rounddb.Round, error], error)
	// CompleteRound locks a round's scores and makes it count toward the
	// standings.
	CompleteRound(ctx context.Context, id string) (RoundResult, error)
	DeleteRound(ctx context.Context, id string) (results.OperationResult[bool, error], error)
	// ImportScorecard records every stroke on an uploaded CSV or XLSX card.
	ImportScorecard(ctx context.Context, roundID string, req ImportScorecardRequest) (ImportResult, error)
}

// CourseLookup loads a course with its holes.
type CourseLookup interface {
	GetCourse(ctx context.Context, db bun.IDB, id string) (*coursedb.Course, error)
}

// Roster lists the trip's players.
type Roster interface {
	ListPlayers(ctx context.Context, db bun.IDB) ([]playerdb.Player, error)
}

// ScoreWriter stores imported scores.
type ScoreWriter interface {
	UpsertScores(ctx context.Context, db bun.IDB, scores []scoredb.Score) error
}

// CreateRoundRequest schedules a round. RoundDate accepts a calendar date or
// phrases such as "today" and "next friday"; empty means today. A zero
// RoundNumber takes the next free number.
type CreateRoundRequest struct {
	CourseID    string `json:"course_id" validate:"required"`
	RoundDate   string `json:"round_date" validate:"max=64"`
	RoundNumber int    `json:"round_number" validate:"omitempty,min=1"`
}

// ImportScorecardRequest carries an uploaded scorecard file.
type ImportScorecardRequest struct {
	FileName string `validate:"required"`
	Data     []byte `validate:"required,min=1"`
}

// ImportSummary reports what an import wrote and what it skipped.
type ImportSummary struct {
	RoundID        string   `json:"round_id"`
	Imported       int      `json:"imported"`
	PlayerIDs      []string `json:"player_ids"`
	UnknownPlayers []string `json:"unknown_players,omitempty"`
	UnknownHoles   []int    `json:"unknown_holes,omitempty"`
	ParMismatches  []int    `json:"par_mismatches,omitempty"`
}
