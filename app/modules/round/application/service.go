package roundservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/trip-scorer/app/eventbus"
	"github.com/Black-And-White-Club/trip-scorer/app/events"
	coursedb "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/app/modules/round/application/parsers"
	rounddb "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/repositories"
	roundtime "github.com/Black-And-White-Club/trip-scorer/app/modules/round/time_utils"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/internal/operation"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
)

// RoundService implements Service.
type RoundService struct {
	repo      rounddb.Repository
	courses   CourseLookup
	roster    Roster
	scores    ScoreWriter
	parsers   parsers.ParserFactory
	clock     roundtime.Clock
	dates     *roundtime.DateParser
	publisher message.Publisher
	telemetry operation.Telemetry
	db        *bun.DB
}

var _ Service = (*RoundService)(nil)

// Option customises a RoundService.
type Option func(*RoundService)

// WithClock anchors relative round dates and completion times to clock.
func WithClock(clock roundtime.Clock) Option {
	return func(s *RoundService) { s.clock = clock }
}

// WithParserFactory replaces the scorecard parser factory.
func WithParserFactory(f parsers.ParserFactory) Option {
	return func(s *RoundService) { s.parsers = f }
}

// NewRoundService creates a new RoundService. A nil publisher skips events.
func NewRoundService(
	repo rounddb.Repository,
	courses CourseLookup,
	roster Roster,
	scores ScoreWriter,
	publisher message.Publisher,
	obs observability.Observability,
	db *bun.DB,
	opts ...Option,
) *RoundService {
	s := &RoundService{
		repo:      repo,
		courses:   courses,
		roster:    roster,
		scores:    scores,
		parsers:   parsers.NewFactory(),
		clock:     roundtime.SystemClock{},
		publisher: publisher,
		telemetry: operation.NewTelemetry("round", obs),
		db:        db,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dates = roundtime.NewDateParser(s.clock, nil)
	return s
}

func (s *RoundService) CreateRound(ctx context.Context, req CreateRoundRequest) (RoundResult, error) {
	attributes := []attribute.KeyValue{operation.Attr(observability.FieldCourseID, req.CourseID)}
	return operation.Run(ctx, s.telemetry, "CreateRound", attributes, func(ctx context.Context) (RoundResult, error) {
		if err := httpapi.Validate(req); err != nil {
			return results.FailureResult[*rounddb.Round, error](err), nil
		}
		date, err := s.dates.Parse(req.RoundDate)
		if err != nil {
			return results.FailureResult[*rounddb.Round, error](fmt.Errorf("%w: %v", ErrInvalidRoundDate, err)), nil
		}

		return operation.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (RoundResult, error) {
			course, err := s.courses.GetCourse(ctx, db, req.CourseID)
			if errors.Is(err, coursedb.ErrNotFound) {
				return results.FailureResult[*rounddb.Round, error](ErrCourseNotFound), nil
			}
			if err != nil {
				return RoundResult{}, err
			}

			number := req.RoundNumber
			if number == 0 {
				highest, err := s.repo.MaxRoundNumber(ctx, db)
				if err != nil {
					return RoundResult{}, err
				}
				number = highest + 1
			} else {
				taken, err := s.numberTaken(ctx, db, number)
				if err != nil {
					return RoundResult{}, err
				}
				if taken {
					return results.FailureResult[*rounddb.Round, error](ErrDuplicateRoundNumber), nil
				}
			}

			round := &rounddb.Round{
				CourseID:    course.ID,
				RoundDate:   date.UTC(),
				RoundNumber: number,
			}
			if err := s.repo.CreateRound(ctx, db, round); err != nil {
				return RoundResult{}, err
			}
			round.Course = course
			return results.SuccessResult[*rounddb.Round, error](round), nil
		})
	})
}

func (s *RoundService) GetRound(ctx context.Context, id string) (RoundResult, error) {
	return operation.Run(ctx, s.telemetry, "GetRound", attrs(id), func(ctx context.Context) (RoundResult, error) {
		round, err := s.loadRound(ctx, nil, id)
		if err != nil {
			return results.FromError[*rounddb.Round](err)
		}
		return results.SuccessResult[*rounddb.Round, error](round), nil
	})
}

func (s *RoundService) ListRounds(ctx context.Context) (results.OperationResult[[]rounddb.Round, error], error) {
	return operation.Run(ctx, s.telemetry, "ListRounds", nil, func(ctx context.Context) (results.OperationResult[[]rounddb.Round, error], error) {
		rounds, err := s.repo.ListRounds(ctx, nil)
		if err != nil {
			return results.OperationResult[[]rounddb.Round, error]{}, err
		}
		if rounds == nil {
			rounds = []rounddb.Round{}
		}
		return results.SuccessResult[[]rounddb.Round, error](rounds), nil
	})
}

func (s *RoundService) CompleteRound(ctx context.Context, id string) (RoundResult, error) {
	return operation.Run(ctx, s.telemetry, "CompleteRound", attrs(id), func(ctx context.Context) (RoundResult, error) {
		result, err := operation.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (RoundResult, error) {
			round, err := s.loadRound(ctx, db, id)
			if err != nil {
				return results.FromError[*rounddb.Round](err)
			}
			if round.IsComplete {
				return results.FailureResult[*rounddb.Round, error](ErrRoundComplete), nil
			}

			completedAt := s.clock.Now().UTC()
			if err := s.repo.MarkComplete(ctx, db, id, completedAt); err != nil {
				return RoundResult{}, err
			}
			round.IsComplete = true
			round.CompletedAt = completedAt
			return results.SuccessResult[*rounddb.Round, error](round), nil
		})

		if err == nil && result.IsSuccess() {
			round := *result.Success
			s.publish(ctx, events.RoundCompletedV1, events.RoundCompletedPayloadV1{
				RoundID:     round.ID,
				RoundNumber: round.RoundNumber,
				CompletedAt: round.CompletedAt,
			})
		}
		return result, err
	})
}

// DeleteRound removes a round with its scores and achievements.
func (s *RoundService) DeleteRound(ctx context.Context, id string) (results.OperationResult[bool, error], error) {
	return operation.Run(ctx, s.telemetry, "DeleteRound", attrs(id), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		err := s.repo.DeleteRound(ctx, nil, id)
		if errors.Is(err, rounddb.ErrNoRowsAffected) {
			return results.FailureResult[bool, error](ErrRoundNotFound), nil
		}
		if err != nil {
			return results.OperationResult[bool, error]{}, err
		}

		s.publish(ctx, events.RoundDeletedV1, events.RoundDeletedPayloadV1{RoundID: id})
		return results.SuccessResult[bool, error](true), nil
	})
}

func (s *RoundService) loadRound(ctx context.Context, db bun.IDB, id string) (*rounddb.Round, error) {
	round, err := s.repo.GetRound(ctx, db, id)
	if errors.Is(err, rounddb.ErrNotFound) {
		return nil, ErrRoundNotFound
	}
	return round, err
}

func (s *RoundService) numberTaken(ctx context.Context, db bun.IDB, number int) (bool, error) {
	rounds, err := s.repo.ListRounds(ctx, db)
	if err != nil {
		return false, err
	}
	for _, r := range rounds {
		if r.RoundNumber == number {
			return true, nil
		}
	}
	return false, nil
}

// publish sends an event after the write committed; failures are only logged.
func (s *RoundService) publish(ctx context.Context, topic string, payload any) {
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

func attrs(roundID string) []attribute.KeyValue {
	return []attribute.KeyValue{operation.Attr(observability.FieldRoundID, roundID)}
}
