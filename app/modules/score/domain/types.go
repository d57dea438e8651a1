package scoredomain

// PlayerID identifies a trip player.
type PlayerID string

// HoleID identifies a single hole of a course.
type HoleID string

// Hole is the scoring-relevant view of a course hole.
type Hole struct {
	ID         HoleID
	HoleNumber int
	Par        int
}

// Score is one player's result on one hole of a round.
type Score struct {
	HoleID     HoleID
	PlayerID   PlayerID
	Strokes    int
	FairwayHit bool
	GIR        bool
}

// RoundScores summarises a single player's round.
type RoundScores struct {
	PlayerID      PlayerID `json:"player_id"`
	PlayerName    string   `json:"player_name"`
	TotalStrokes  int      `json:"total_strokes"`
	Birdies       int      `json:"birdies"`
	Eagles        int      `json:"eagles"`
	FairwaysHit   int      `json:"fairways_hit"`
	TotalFairways int      `json:"total_fairways"`
	GIRs          int      `json:"girs"`
	TotalHoles    int      `json:"total_holes"`
}

// AchievementType is a per-hole side contest.
type AchievementType string

const (
	AchievementClosestToPin AchievementType = "closest_to_pin"
	AchievementLongestDrive AchievementType = "longest_drive"
)

// Valid reports whether t is a known achievement type.
func (t AchievementType) Valid() bool {
	return t == AchievementClosestToPin || t == AchievementLongestDrive
}
