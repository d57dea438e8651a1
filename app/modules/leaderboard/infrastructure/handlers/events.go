package leaderboardhandlers

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/trip-scorer/app/eventbus"
	"github.com/Black-And-White-Club/trip-scorer/app/events"
	leaderboardservice "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/application"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// RecomputeTopics are the events after which standings are recomputed.
var RecomputeTopics = []string{
	events.RoundCompletedV1,
	events.RoundDeletedV1,
	events.ScoreRecordedV1,
	events.AchievementRecordedV1,
}

// Handlers reacts to round events by recomputing the standings.
type Handlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
}

func NewHandlers(service leaderboardservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

func newRoundScoped(topic string) (events.RoundScoped, bool) {
	switch topic {
	case events.RoundCompletedV1:
		return &events.RoundCompletedPayloadV1{}, true
	case events.RoundDeletedV1:
		return &events.RoundDeletedPayloadV1{}, true
	case events.ScoreRecordedV1:
		return &events.ScoreRecordedPayloadV1{}, true
	case events.AchievementRecordedV1:
		return &events.AchievementRecordedPayloadV1{}, true
	}
	return nil, false
}

// HandleRoundChanged returns the handler for one of RecomputeTopics. It drops
// the round's memoised points, recomputes the standings and emits them as a
// LeaderboardUpdatedV1 message. Malformed events are acked and dropped;
// store errors are returned so the message is retried.
func (h *Handlers) HandleRoundChanged(topic string) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx := eventbus.WithCorrelationID(msg.Context(), middleware.MessageCorrelationID(msg))

		payload, ok := newRoundScoped(topic)
		if !ok {
			h.logger.WarnContext(ctx, "No payload registered for topic", slog.String(observability.FieldTopic, topic))
			return nil, nil
		}
		if err := json.Unmarshal(msg.Payload, payload); err != nil || payload.GetRoundID() == "" {
			h.logger.WarnContext(ctx, "Dropping malformed event",
				slog.String(observability.FieldTopic, topic),
				slog.String("message_id", msg.UUID),
				slog.Any(observability.FieldError, err),
			)
			return nil, nil
		}

		roundID := payload.GetRoundID()
		h.service.InvalidateRound(roundID)

		res, err := h.service.GetLeaderboard(ctx)
		if err != nil {
			return nil, fmt.Errorf("recompute leaderboard after %s: %w", topic, err)
		}
		if res.IsFailure() {
			h.logger.WarnContext(ctx, "Leaderboard recompute failed",
				slog.String(observability.FieldRoundID, roundID),
				slog.Any(observability.FieldError, *res.Failure),
			)
			return nil, nil
		}

		standings := *res.Success
		out, err := eventbus.NewMessage(ctx, events.LeaderboardUpdatedPayloadV1{
			TriggerTopic: topic,
			RoundID:      roundID,
			Entries:      standings.Entries,
			ComputedAt:   standings.ComputedAt,
		})
		if err != nil {
			return nil, err
		}

		h.logger.InfoContext(ctx, "Leaderboard recomputed",
			slog.String(observability.FieldTopic, topic),
			slog.String(observability.FieldRoundID, roundID),
			slog.Int("entries", len(standings.Entries)),
		)
		return []*message.Message{out}, nil
	}
}
