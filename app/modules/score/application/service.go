package scoreservice

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/Black-And-White-Club/trip-scorer/app/eventbus"
	"github.com/Black-And-White-Club/trip-scorer/app/events"
	coursedb "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories"
	rounddb "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/repositories"
	scoredomain "github.com/Black-And-White-Club/trip-scorer/app/modules/score/domain"
	scoredb "github.com/Black-And-White-Club/trip-scorer/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/internal/operation"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
)

// SourceManual marks scores entered through the API rather than imported.
const SourceManual = "manual"

// ScoreService implements Service.
type ScoreService struct {
	repo      scoredb.Repository
	rounds    RoundLookup
	holes     HoleLookup
	roster    Roster
	publisher message.Publisher
	telemetry operation.Telemetry
	db        *bun.DB
}

var _ Service = (*ScoreService)(nil)

// NewScoreService creates a new ScoreService. A nil publisher skips events.
func NewScoreService(
	repo scoredb.Repository,
	rounds RoundLookup,
	holes HoleLookup,
	roster Roster,
	publisher message.Publisher,
	obs observability.Observability,
	db *bun.DB,
) *ScoreService {
	return &ScoreService{
		repo:      repo,
		rounds:    rounds,
		holes:     holes,
		roster:    roster,
		publisher: publisher,
		telemetry: operation.NewTelemetry("score", obs),
		db:        db,
	}
}

func (s *ScoreService) RecordScores(ctx context.Context, roundID string, req RecordScoresRequest) (ScoresResult, error) {
	return operation.Run(ctx, s.telemetry, "RecordScores", attrs(roundID), func(ctx context.Context) (ScoresResult, error) {
		if err := httpapi.Validate(req); err != nil {
			return results.FailureResult[[]scoredb.Score, error](err), nil
		}

		result, err := operation.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (ScoresResult, error) {
			round, err := s.editableRound(ctx, db, roundID)
			if err != nil {
				return results.FromError[[]scoredb.Score](err)
			}
			holes, err := s.holesByNumber(ctx, db, round.CourseID)
			if err != nil {
				return ScoresResult{}, err
			}
			players, err := s.playerIDs(ctx, db)
			if err != nil {
				return ScoresResult{}, err
			}

			type key struct {
				player string
				hole   int
			}
			seen := make(map[key]bool, len(req.Scores))
			scores := make([]scoredb.Score, 0, len(req.Scores))
			for _, e := range req.Scores {
				if seen[key{e.PlayerID, e.HoleNumber}] {
					return results.FailureResult[[]scoredb.Score, error](ErrDuplicateEntry), nil
				}
				seen[key{e.PlayerID, e.HoleNumber}] = true

				hole, ok := holes[e.HoleNumber]
				if !ok {
					return results.FailureResult[[]scoredb.Score, error](ErrUnknownHole), nil
				}
				if !players[e.PlayerID] {
					return results.FailureResult[[]scoredb.Score, error](ErrUnknownPlayer), nil
				}
				scores = append(scores, scoredb.Score{
					RoundID:    roundID,
					PlayerID:   e.PlayerID,
					HoleID:     hole.ID,
					Strokes:    e.Strokes,
					FairwayHit: e.FairwayHit,
					GIR:        e.GIR,
				})
			}

			if err := s.repo.UpsertScores(ctx, db, scores); err != nil {
				return ScoresResult{}, err
			}
			if err := s.rounds.TouchRound(ctx, db, roundID); err != nil {
				return ScoresResult{}, err
			}
			return results.SuccessResult[[]scoredb.Score, error](scores), nil
		})

		if err == nil && result.IsSuccess() {
			s.publish(ctx, events.ScoreRecordedV1, events.ScoreRecordedPayloadV1{
				RoundID:   roundID,
				PlayerIDs: distinctPlayers(*result.Success),
				Count:     len(*result.Success),
				Source:    SourceManual,
			})
		}
		return result, err
	})
}

func (s *ScoreService) ListScores(ctx context.Context, roundID string) (ScoresResult, error) {
	return operation.Run(ctx, s.telemetry, "ListScores", attrs(roundID), func(ctx context.Context) (ScoresResult, error) {
		if _, err := s.loadRound(ctx, nil, roundID); err != nil {
			return results.FromError[[]scoredb.Score](err)
		}
		scores, err := s.repo.ListScoresByRound(ctx, nil, roundID)
		if err != nil {
			return ScoresResult{}, err
		}
		if scores == nil {
			scores = []scoredb.Score{}
		}
		return results.SuccessResult[[]scoredb.Score, error](scores), nil
	})
}

func (s *ScoreService) RecordAchievement(ctx context.Context, roundID string, req RecordAchievementRequest) (AchievementResult, error) {
	return operation.Run(ctx, s.telemetry, "RecordAchievement", attrs(roundID), func(ctx context.Context) (AchievementResult, error) {
		if err := httpapi.Validate(req); err != nil {
			return results.FailureResult[*scoredb.Achievement, error](err), nil
		}

		result, err := operation.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (AchievementResult, error) {
			round, err := s.editableRound(ctx, db, roundID)
			if err != nil {
				return results.FromError[*scoredb.Achievement](err)
			}
			holes, err := s.holesByNumber(ctx, db, round.CourseID)
			if err != nil {
				return AchievementResult{}, err
			}
			hole, ok := holes[req.HoleNumber]
			if !ok {
				return results.FailureResult[*scoredb.Achievement, error](ErrUnknownHole), nil
			}
			players, err := s.playerIDs(ctx, db)
			if err != nil {
				return AchievementResult{}, err
			}
			if !players[req.PlayerID] {
				return results.FailureResult[*scoredb.Achievement, error](ErrUnknownPlayer), nil
			}

			achievement := &scoredb.Achievement{
				RoundID:         roundID,
				HoleID:          hole.ID,
				PlayerID:        req.PlayerID,
				AchievementType: scoredomain.AchievementType(req.AchievementType),
			}
			if err := s.repo.UpsertAchievement(ctx, db, achievement); err != nil {
				return AchievementResult{}, err
			}
			if err := s.rounds.TouchRound(ctx, db, roundID); err != nil {
				return AchievementResult{}, err
			}
			return results.SuccessResult[*scoredb.Achievement, error](achievement), nil
		})

		if err == nil && result.IsSuccess() {
			a := *result.Success
			s.publish(ctx, events.AchievementRecordedV1, events.AchievementRecordedPayloadV1{
				RoundID:         a.RoundID,
				HoleID:          a.HoleID,
				PlayerID:        a.PlayerID,
				AchievementType: string(a.AchievementType),
			})
		}
		return result, err
	})
}

func (s *ScoreService) ListAchievements(ctx context.Context, roundID string) (AchievementsResult, error) {
	return operation.Run(ctx, s.telemetry, "ListAchievements", attrs(roundID), func(ctx context.Context) (AchievementsResult, error) {
		if _, err := s.loadRound(ctx, nil, roundID); err != nil {
			return results.FromError[[]scoredb.Achievement](err)
		}
		achievements, err := s.repo.ListAchievementsByRound(ctx, nil, roundID)
		if err != nil {
			return AchievementsResult{}, err
		}
		if achievements == nil {
			achievements = []scoredb.Achievement{}
		}
		return results.SuccessResult[[]scoredb.Achievement, error](achievements), nil
	})
}

func (s *ScoreService) DeleteAchievement(ctx context.Context, id string) (results.OperationResult[bool, error], error) {
	attributes := []attribute.KeyValue{operation.Attr("achievement_id", id)}
	return operation.Run(ctx, s.telemetry, "DeleteAchievement", attributes, func(ctx context.Context) (results.OperationResult[bool, error], error) {
		var removed *scoredb.Achievement

		result, err := operation.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
			achievement, err := s.repo.GetAchievement(ctx, db, id)
			if errors.Is(err, scoredb.ErrNotFound) {
				return results.FailureResult[bool, error](ErrAchievementNotFound), nil
			}
			if err != nil {
				return results.OperationResult[bool, error]{}, err
			}
			if _, err := s.editableRound(ctx, db, achievement.RoundID); err != nil {
				return results.FromError[bool](err)
			}

			err = s.repo.DeleteAchievement(ctx, db, id)
			if errors.Is(err, scoredb.ErrNoRowsAffected) {
				return results.FailureResult[bool, error](ErrAchievementNotFound), nil
			}
			if err != nil {
				return results.OperationResult[bool, error]{}, err
			}
			if err := s.rounds.TouchRound(ctx, db, achievement.RoundID); err != nil {
				return results.OperationResult[bool, error]{}, err
			}
			removed = achievement
			return results.SuccessResult[bool, error](true), nil
		})

		if err == nil && result.IsSuccess() && removed != nil {
			s.publish(ctx, events.AchievementRecordedV1, events.AchievementRecordedPayloadV1{
				RoundID:         removed.RoundID,
				HoleID:          removed.HoleID,
				AchievementType: string(removed.AchievementType),
				Removed:         true,
			})
		}
		return result, err
	})
}

func (s *ScoreService) GetRoundStats(ctx context.Context, roundID string) (StatsResult, error) {
	return operation.Run(ctx, s.telemetry, "GetRoundStats", attrs(roundID), func(ctx context.Context) (StatsResult, error) {
		round, err := s.loadRound(ctx, nil, roundID)
		if err != nil {
			return results.FromError[[]scoredomain.RoundScores](err)
		}
		holes, err := s.holes.ListHoles(ctx, nil, round.CourseID)
		if err != nil {
			return StatsResult{}, err
		}
		rows, err := s.repo.ListScoresByRound(ctx, nil, roundID)
		if err != nil {
			return StatsResult{}, err
		}
		players, err := s.roster.ListPlayers(ctx, nil)
		if err != nil {
			return StatsResult{}, err
		}

		names := make(map[scoredomain.PlayerID]string, len(players))
		for _, p := range players {
			names[scoredomain.PlayerID(p.ID)] = p.Name
		}

		stats := scoredomain.ComputePlayerStats(toDomainScores(rows), toDomainHoles(holes))
		for i := range stats {
			stats[i].PlayerName = names[stats[i].PlayerID]
		}
		return results.SuccessResult[[]scoredomain.RoundScores, error](stats), nil
	})
}

// loadRound fetches a round, reporting a missing one as ErrRoundNotFound.
func (s *ScoreService) loadRound(ctx context.Context, db bun.IDB, roundID string) (*rounddb.Round, error) {
	round, err := s.rounds.GetRound(ctx, db, roundID)
	if errors.Is(err, rounddb.ErrNotFound) {
		return nil, ErrRoundNotFound
	}
	return round, err
}

// editableRound is loadRound that also rejects complete rounds.
func (s *ScoreService) editableRound(ctx context.Context, db bun.IDB, roundID string) (*rounddb.Round, error) {
	round, err := s.loadRound(ctx, db, roundID)
	if err != nil {
		return nil, err
	}
	if round.IsComplete {
		return nil, ErrRoundComplete
	}
	return round, nil
}

func (s *ScoreService) holesByNumber(ctx context.Context, db bun.IDB, courseID string) (map[int]coursedb.Hole, error) {
	holes, err := s.holes.ListHoles(ctx, db, courseID)
	if err != nil {
		return nil, err
	}
	byNumber := make(map[int]coursedb.Hole, len(holes))
	for _, h := range holes {
		byNumber[h.HoleNumber] = h
	}
	return byNumber, nil
}

func (s *ScoreService) playerIDs(ctx context.Context, db bun.IDB) (map[string]bool, error) {
	players, err := s.roster.ListPlayers(ctx, db)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(players))
	for _, p := range players {
		ids[p.ID] = true
	}
	return ids, nil
}

// publish sends an event once the write has committed. Failures are logged;
// the leaderboard recomputes from stored data on the next read regardless.
func (s *ScoreService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := eventbus.PublishJSON(ctx, s.publisher, topic, payload); err != nil {
		s.telemetry.Logger.ErrorContext(ctx, "Failed to publish event",
			slog.String(observability.FieldTopic, topic),
			slog.Any(observability.FieldError, err),
		)
	}
}

func distinctPlayers(scores []scoredb.Score) []string {
	ids := make([]string, 0, len(scores))
	for _, sc := range scores {
		ids = append(ids, sc.PlayerID)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

func toDomainScores(rows []scoredb.Score) []scoredomain.Score {
	out := make([]scoredomain.Score, len(rows))
	for i, r := range rows {
		out[i] = r.ToDomain()
	}
	return out
}

func toDomainHoles(holes []coursedb.Hole) []scoredomain.Hole {
	out := make([]scoredomain.Hole, len(holes))
	for i, h := range holes {
		out[i] = h.ToDomain()
	}
	return out
}

func attrs(roundID string) []attribute.KeyValue {
	return []attribute.KeyValue{operation.Attr(observability.FieldRoundID, roundID)}
}
