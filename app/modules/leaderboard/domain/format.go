package leaderboarddomain

import (
	"math"
	"strconv"
	"strings"
)

// FormatPoints renders points with one decimal, dropping a trailing ".0".
// Halves round up, so a quarter share of 0.25 shows as "0.3".
func FormatPoints(p float64) string {
	s := strconv.FormatFloat(math.Floor(p*10+0.5)/10, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	if s == "-0" {
		return "0"
	}
	return s
}

// Ordinal renders a rank as "1st", "2nd", "3rd", "11th".
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
