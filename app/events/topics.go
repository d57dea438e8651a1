// Package events defines the topics and payloads modules exchange over the
// event bus.
package events

const (
	// RoundCompletedV1 is published when a round is marked complete.
	RoundCompletedV1 = "trip.round.completed.v1"
	// RoundDeletedV1 is published after a round and its scores are removed.
	RoundDeletedV1 = "trip.round.deleted.v1"
	// ScoreRecordedV1 is published after scores are upserted or imported.
	ScoreRecordedV1 = "trip.score.recorded.v1"
	// AchievementRecordedV1 is published after an achievement upsert or delete.
	AchievementRecordedV1 = "trip.achievement.recorded.v1"
	// LeaderboardUpdatedV1 carries freshly computed standings.
	LeaderboardUpdatedV1 = "trip.leaderboard.updated.v1"
)
