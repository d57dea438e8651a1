package events

import (
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/domain"
)

// RoundCompletedPayloadV1 announces a finished round.
type RoundCompletedPayloadV1 struct {
	RoundID     string    `json:"round_id"`
	RoundNumber int       `json:"round_number"`
	CompletedAt time.Time `json:"completed_at"`
}

// RoundDeletedPayloadV1 announces a removed round.
type RoundDeletedPayloadV1 struct {
	RoundID string `json:"round_id"`
}

// ScoreRecordedPayloadV1 announces score changes for a round.
type ScoreRecordedPayloadV1 struct {
	RoundID   string   `json:"round_id"`
	PlayerIDs []string `json:"player_ids"`
	Count     int      `json:"count"`
	Source    string   `json:"source"`
}

// AchievementRecordedPayloadV1 announces an achievement change for a round.
type AchievementRecordedPayloadV1 struct {
	RoundID         string `json:"round_id"`
	HoleID          string `json:"hole_id"`
	PlayerID        string `json:"player_id,omitempty"`
	AchievementType string `json:"achievement_type"`
	Removed         bool   `json:"removed,omitempty"`
}

// LeaderboardUpdatedPayloadV1 carries the ranked standings.
type LeaderboardUpdatedPayloadV1 struct {
	TriggerTopic string                               `json:"trigger_topic"`
	RoundID      string                               `json:"round_id"`
	Entries      []leaderboarddomain.LeaderboardEntry `json:"entries"`
	ComputedAt   time.Time                            `json:"computed_at"`
}

// RoundScoped is implemented by payloads tied to a single round.
type RoundScoped interface {
	GetRoundID() string
}

func (p RoundCompletedPayloadV1) GetRoundID() string      { return p.RoundID }
func (p RoundDeletedPayloadV1) GetRoundID() string        { return p.RoundID }
func (p ScoreRecordedPayloadV1) GetRoundID() string       { return p.RoundID }
func (p AchievementRecordedPayloadV1) GetRoundID() string { return p.RoundID }
