package leaderboarddomain

import scoredomain "github.com/Black-And-White-Club/trip-scorer/app/modules/score/domain"

// PlayerID identifies a trip player.
type PlayerID = scoredomain.PlayerID

// UnknownPlayerName is shown for standings entries whose player record is gone.
const UnknownPlayerName = "Unknown"

// AchievementWinner records who took a side contest on a given hole.
type AchievementWinner struct {
	HoleID   scoredomain.HoleID `json:"hole_id"`
	PlayerID PlayerID           `json:"player_id"`
}

// RoundAchievements groups a round's side-contest winners by contest.
type RoundAchievements struct {
	ClosestToPin []AchievementWinner `json:"closest_to_pin"`
	LongestDrive []AchievementWinner `json:"longest_drive"`
}

// PointsBreakdown is a player's points for a round, or summed across rounds.
type PointsBreakdown struct {
	Placement    float64 `json:"placement"`
	Birdies      float64 `json:"birdies"`
	Eagles       float64 `json:"eagles"`
	ClosestToPin float64 `json:"closest_to_pin"`
	LongestDrive float64 `json:"longest_drive"`
	MostFairways float64 `json:"most_fairways"`
	MostGIRs     float64 `json:"most_girs"`
	Total        float64 `json:"total"`
}

// Add returns the component-wise sum of b and o.
func (b PointsBreakdown) Add(o PointsBreakdown) PointsBreakdown {
	return PointsBreakdown{
		Placement:    b.Placement + o.Placement,
		Birdies:      b.Birdies + o.Birdies,
		Eagles:       b.Eagles + o.Eagles,
		ClosestToPin: b.ClosestToPin + o.ClosestToPin,
		LongestDrive: b.LongestDrive + o.LongestDrive,
		MostFairways: b.MostFairways + o.MostFairways,
		MostGIRs:     b.MostGIRs + o.MostGIRs,
		Total:        b.Total + o.Total,
	}
}

// CompletedRound is everything the points engine needs from a finished round.
type CompletedRound struct {
	RoundID      string
	RoundNumber  int
	Scores       []scoredomain.RoundScores
	Achievements RoundAchievements
}

// LeaderboardEntry is one row of the cumulative standings.
type LeaderboardEntry struct {
	PlayerID     PlayerID        `json:"player_id"`
	PlayerName   string          `json:"player_name"`
	TotalPoints  float64         `json:"total_points"`
	RoundsPlayed int             `json:"rounds_played"`
	Rank         int             `json:"rank"`
	IsTied       bool            `json:"is_tied"`
	Breakdown    PointsBreakdown `json:"breakdown"`
}

// RoundResult is one row of a single round's result sheet.
type RoundResult struct {
	PlayerID     PlayerID        `json:"player_id"`
	PlayerName   string          `json:"player_name"`
	TotalStrokes int             `json:"total_strokes"`
	ScoreToPar   int             `json:"score_to_par"`
	Rank         int             `json:"rank"`
	IsTied       bool            `json:"is_tied"`
	Points       PointsBreakdown `json:"points"`
}
