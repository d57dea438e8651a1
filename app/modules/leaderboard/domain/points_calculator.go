package leaderboarddomain

import (
	"cmp"
	"slices"

	scoredomain "github.com/Black-And-White-Club/trip-scorer/app/modules/score/domain"
)

const (
	// PointsPerBirdie is awarded for every birdie.
	PointsPerBirdie = 1.0
	// PointsPerEagle is awarded for every eagle or better. An eagle earns no
	// birdie point on top.
	PointsPerEagle = 4.0
	// PointsPerAchievement is awarded per closest-to-pin or longest-drive win.
	PointsPerAchievement = 1.0
	// StatBonusPool is split between the leaders in fairways hit and in GIRs.
	StatBonusPool = 1.0
)

// placementSchedule holds placement points for 1st through 5th.
var placementSchedule = [...]float64{10, 8, 6, 4, 2}

// PlacementPoints returns the placement points for a zero-based finishing
// position. Positions past the schedule earn the last value.
func PlacementPoints(position int) float64 {
	if position < 0 {
		return 0
	}
	if position >= len(placementSchedule) {
		return placementSchedule[len(placementSchedule)-1]
	}
	return placementSchedule[position]
}

// ComputeRoundPoints derives every player's points breakdown for one round.
//
// Players are ordered by total strokes, lowest first. Players on equal
// strokes form a tied block that shares the mean of the placement points for
// the positions it occupies; the next block starts after it. Achievements
// naming a player absent from scores are ignored.
func ComputeRoundPoints(scores []scoredomain.RoundScores, achievements RoundAchievements) map[PlayerID]PointsBreakdown {
	points := make(map[PlayerID]PointsBreakdown, len(scores))
	if len(scores) == 0 {
		return points
	}

	sorted := slices.Clone(scores)
	slices.SortStableFunc(sorted, func(a, b scoredomain.RoundScores) int {
		if c := cmp.Compare(a.TotalStrokes, b.TotalStrokes); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})

	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && sorted[end].TotalStrokes == sorted[start].TotalStrokes {
			end++
		}

		var sum float64
		for pos := start; pos < end; pos++ {
			sum += PlacementPoints(pos)
		}
		share := sum / float64(end-start)

		for pos := start; pos < end; pos++ {
			p := sorted[pos]
			points[p.PlayerID] = PointsBreakdown{
				Placement: share,
				Birdies:   float64(p.Birdies) * PointsPerBirdie,
				Eagles:    float64(p.Eagles) * PointsPerEagle,
			}
		}
		start = end
	}

	awardAchievements(points, achievements.ClosestToPin, func(b *PointsBreakdown) {
		b.ClosestToPin += PointsPerAchievement
	})
	awardAchievements(points, achievements.LongestDrive, func(b *PointsBreakdown) {
		b.LongestDrive += PointsPerAchievement
	})

	awardStatLeaders(points, sorted,
		func(s scoredomain.RoundScores) bool { return s.TotalFairways > 0 },
		func(s scoredomain.RoundScores) int { return s.FairwaysHit },
		func(b *PointsBreakdown, share float64) { b.MostFairways = share },
	)
	awardStatLeaders(points, sorted,
		func(scoredomain.RoundScores) bool { return true },
		func(s scoredomain.RoundScores) int { return s.GIRs },
		func(b *PointsBreakdown, share float64) { b.MostGIRs = share },
	)

	for id, b := range points {
		b.Total = b.Placement + b.Birdies + b.Eagles + b.ClosestToPin + b.LongestDrive + b.MostFairways + b.MostGIRs
		points[id] = b
	}

	return points
}

// awardAchievements applies award once per winner record; records stack.
func awardAchievements(points map[PlayerID]PointsBreakdown, winners []AchievementWinner, award func(*PointsBreakdown)) {
	for _, w := range winners {
		b, ok := points[w.PlayerID]
		if !ok {
			continue
		}
		award(&b)
		points[w.PlayerID] = b
	}
}

// awardStatLeaders splits StatBonusPool evenly between the eligible players
// holding the best value. Nothing is awarded when the best value is zero.
func awardStatLeaders(
	points map[PlayerID]PointsBreakdown,
	players []scoredomain.RoundScores,
	eligible func(scoredomain.RoundScores) bool,
	value func(scoredomain.RoundScores) int,
	award func(*PointsBreakdown, float64),
) {
	best := 0
	for _, p := range players {
		if eligible(p) && value(p) > best {
			best = value(p)
		}
	}
	if best == 0 {
		return
	}

	var leaders []PlayerID
	for _, p := range players {
		if eligible(p) && value(p) == best {
			leaders = append(leaders, p.PlayerID)
		}
	}

	share := StatBonusPool / float64(len(leaders))
	for _, id := range leaders {
		b := points[id]
		award(&b, share)
		points[id] = b
	}
}
