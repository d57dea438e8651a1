package scoredomain

import "strconv"

// ScoreToPar returns strokes relative to par; negative is under par.
func ScoreToPar(strokes, par int) int {
	return strokes - par
}

// FormatScoreToPar renders a to-par value as "E", "+2" or "-1".
func FormatScoreToPar(toPar int) string {
	switch {
	case toPar == 0:
		return "E"
	case toPar > 0:
		return "+" + strconv.Itoa(toPar)
	default:
		return strconv.Itoa(toPar)
	}
}

// ScoreLabel names a single hole result.
func ScoreLabel(strokes, par int) string {
	switch diff := strokes - par; {
	case diff <= -3:
		return "Albatross"
	case diff == -2:
		return "Eagle"
	case diff == -1:
		return "Birdie"
	case diff == 0:
		return "Par"
	case diff == 1:
		return "Bogey"
	case diff == 2:
		return "Double"
	default:
		return "Triple+"
	}
}
