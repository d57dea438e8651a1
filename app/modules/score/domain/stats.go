package scoredomain

import "slices"

// ComputeRoundStats folds one player's hole scores into a RoundScores summary.
//
// Scores whose hole is not present in holes are skipped. A hole one under par
// is a birdie; two or more under is an eagle, never both. Fairways are only
// tracked on par 4 and par 5 holes, greens in regulation on every hole.
// PlayerID is taken from the first resolved score; PlayerName is left for the
// caller to fill in.
func ComputeRoundStats(scores []Score, holes []Hole) RoundScores {
	holeMap := make(map[HoleID]Hole, len(holes))
	for _, h := range holes {
		holeMap[h.ID] = h
	}

	var stats RoundScores
	for _, s := range scores {
		hole, ok := holeMap[s.HoleID]
		if !ok {
			continue
		}

		if stats.PlayerID == "" {
			stats.PlayerID = s.PlayerID
		}

		stats.TotalStrokes += s.Strokes
		stats.TotalHoles++

		switch diff := s.Strokes - hole.Par; {
		case diff == -1:
			stats.Birdies++
		case diff <= -2:
			stats.Eagles++
		}

		if hole.Par >= 4 {
			stats.TotalFairways++
			if s.FairwayHit {
				stats.FairwaysHit++
			}
		}

		if s.GIR {
			stats.GIRs++
		}
	}

	return stats
}

// TotalPar is the sum of par over holes.
func TotalPar(holes []Hole) int {
	total := 0
	for _, h := range holes {
		total += h.Par
	}
	return total
}

// ComputePlayerStats groups a round's scores by player and summarises each
// one, ordered by player id. Players with no score on a known hole are left
// out.
func ComputePlayerStats(scores []Score, holes []Hole) []RoundScores {
	byPlayer := make(map[PlayerID][]Score)
	for _, s := range scores {
		byPlayer[s.PlayerID] = append(byPlayer[s.PlayerID], s)
	}

	ids := make([]PlayerID, 0, len(byPlayer))
	for id := range byPlayer {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]RoundScores, 0, len(ids))
	for _, id := range ids {
		stats := ComputeRoundStats(byPlayer[id], holes)
		if stats.TotalHoles == 0 {
			continue
		}
		out = append(out, stats)
	}
	return out
}
