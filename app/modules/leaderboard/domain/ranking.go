package leaderboarddomain

import (
	"cmp"
	"math"
	"slices"

	scoredomain "github.com/Black-And-White-Club/trip-scorer/app/modules/score/domain"
)

// ComputeLeaderboard runs the points engine over every completed round and
// aggregates the results into ranked standings.
func ComputeLeaderboard(rounds []CompletedRound, players map[PlayerID]string) []LeaderboardEntry {
	perRound := make([]map[PlayerID]PointsBreakdown, len(rounds))
	for i, r := range rounds {
		perRound[i] = ComputeRoundPoints(r.Scores, r.Achievements)
	}
	return AggregateLeaderboard(perRound, players)
}

// AggregateLeaderboard sums per-round breakdowns into standings.
//
// A player's RoundsPlayed counts the rounds they appear in. Entries are
// ordered by total points, highest first, and ranked with competition
// ranking: equal totals share the earlier rank, are flagged as tied, and the
// next distinct total takes its positional rank (1, 1, 3).
func AggregateLeaderboard(perRound []map[PlayerID]PointsBreakdown, players map[PlayerID]string) []LeaderboardEntry {
	totals := make(map[PlayerID]*LeaderboardEntry)
	for _, round := range perRound {
		for _, id := range sortedPlayerIDs(round) {
			entry, ok := totals[id]
			if !ok {
				name, known := players[id]
				if !known || name == "" {
					name = UnknownPlayerName
				}
				entry = &LeaderboardEntry{PlayerID: id, PlayerName: name}
				totals[id] = entry
			}
			entry.Breakdown = entry.Breakdown.Add(round[id])
			entry.RoundsPlayed++
		}
	}

	entries := make([]LeaderboardEntry, 0, len(totals))
	for _, e := range totals {
		e.Breakdown = normalizeBreakdown(e.Breakdown)
		e.TotalPoints = e.Breakdown.Total
		entries = append(entries, *e)
	}

	slices.SortFunc(entries, func(a, b LeaderboardEntry) int {
		if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
			return c
		}
		if c := cmp.Compare(a.PlayerName, b.PlayerName); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})

	assignRanks(len(entries),
		func(i, j int) bool { return entries[i].TotalPoints == entries[j].TotalPoints },
		func(i, rank int, tied bool) {
			entries[i].Rank = rank
			entries[i].IsTied = entries[i].IsTied || tied
		},
	)

	return entries
}

// RankRoundResults builds a single round's result sheet ordered by strokes,
// lowest first, with the same shared-rank tie handling as the standings.
// ScoreToPar is measured against totalPar.
func RankRoundResults(scores []scoredomain.RoundScores, points map[PlayerID]PointsBreakdown, totalPar int) []RoundResult {
	out := make([]RoundResult, 0, len(scores))
	for _, s := range scores {
		out = append(out, RoundResult{
			PlayerID:     s.PlayerID,
			PlayerName:   s.PlayerName,
			TotalStrokes: s.TotalStrokes,
			ScoreToPar:   scoredomain.ScoreToPar(s.TotalStrokes, totalPar),
			Points:       points[s.PlayerID],
		})
	}

	slices.SortFunc(out, func(a, b RoundResult) int {
		if c := cmp.Compare(a.TotalStrokes, b.TotalStrokes); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})

	assignRanks(len(out),
		func(i, j int) bool { return out[i].TotalStrokes == out[j].TotalStrokes },
		func(i, rank int, tied bool) {
			out[i].Rank = rank
			out[i].IsTied = out[i].IsTied || tied
		},
	)

	return out
}

// assignRanks walks an already sorted list of n items and applies
// competition ranking. equal compares two positions; set receives each
// position's rank and whether it ties with a neighbour.
func assignRanks(n int, equal func(i, j int) bool, set func(i, rank int, tied bool)) {
	rank := 0
	for i := 0; i < n; i++ {
		if i > 0 && equal(i, i-1) {
			set(i, rank, true)
			set(i-1, rank, true)
			continue
		}
		rank = i + 1
		set(i, rank, false)
	}
}

func sortedPlayerIDs(m map[PlayerID]PointsBreakdown) []PlayerID {
	ids := make([]PlayerID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// normalizeBreakdown drops float noise from repeated fractional shares so
// totals that are equal on paper compare equal.
func normalizeBreakdown(b PointsBreakdown) PointsBreakdown {
	return PointsBreakdown{
		Placement:    roundPoints(b.Placement),
		Birdies:      roundPoints(b.Birdies),
		Eagles:       roundPoints(b.Eagles),
		ClosestToPin: roundPoints(b.ClosestToPin),
		LongestDrive: roundPoints(b.LongestDrive),
		MostFairways: roundPoints(b.MostFairways),
		MostGIRs:     roundPoints(b.MostGIRs),
		Total:        roundPoints(b.Total),
	}
}

func roundPoints(p float64) float64 {
	return math.Round(p*1e6) / 1e6
}
