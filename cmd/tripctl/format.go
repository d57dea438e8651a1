package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	leaderboardservice "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/domain"
	roundservice "github.com/Black-And-White-Club/trip-scorer/app/modules/round/application"
)

func rankLabel(rank int, tied bool) string {
	if tied {
		return "T" + leaderboarddomain.Ordinal(rank)
	}
	return leaderboarddomain.Ordinal(rank)
}

func printStandings(w io.Writer, standings *leaderboardservice.Standings) error {
	if len(standings.Entries) == 0 {
		_, err := fmt.Fprintln(w, "No completed rounds yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tPLAYER\tPOINTS\tROUNDS\tPLACE\tBIRDIES\tEAGLES\tCTP\tLD\tFIR\tGIR")
	for _, e := range standings.Entries {
		b := e.Breakdown
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rankLabel(e.Rank, e.IsTied),
			e.PlayerName,
			leaderboarddomain.FormatPoints(e.TotalPoints),
			e.RoundsPlayed,
			leaderboarddomain.FormatPoints(b.Placement),
			leaderboarddomain.FormatPoints(b.Birdies),
			leaderboarddomain.FormatPoints(b.Eagles),
			leaderboarddomain.FormatPoints(b.ClosestToPin),
			leaderboarddomain.FormatPoints(b.LongestDrive),
			leaderboarddomain.FormatPoints(b.MostFairways),
			leaderboarddomain.FormatPoints(b.MostGIRs),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d round(s) counted, version %s\n", standings.RoundsCounted, standings.Version)
	return err
}

func printRoundSheet(w io.Writer, sheet *leaderboardservice.RoundSheet) error {
	title := fmt.Sprintf("Round %d", sheet.RoundNumber)
	if sheet.CourseName != "" {
		title += " at " + sheet.CourseName
	}
	if !sheet.IsComplete {
		title += " (in progress)"
	}
	fmt.Fprintf(w, "%s, par %d\n\n", title, sheet.TotalPar)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tPLAYER\tSTROKES\tTO PAR\tPOINTS")
	for _, r := range sheet.Results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			rankLabel(r.Rank, r.IsTied),
			r.PlayerName,
			r.TotalStrokes,
			toPar(r.ScoreToPar),
			leaderboarddomain.FormatPoints(r.Points.Total),
		)
	}
	return tw.Flush()
}

func toPar(n int) string {
	switch {
	case n == 0:
		return "E"
	case n > 0:
		return fmt.Sprintf("+%d", n)
	default:
		return fmt.Sprintf("%d", n)
	}
}

func printImportSummary(w io.Writer, s *roundservice.ImportSummary) {
	fmt.Fprintf(w, "Imported %d score(s) for %d player(s).\n", s.Imported, len(s.PlayerIDs))
	if len(s.UnknownPlayers) > 0 {
		fmt.Fprintf(w, "Unknown players skipped: %s\n", strings.Join(s.UnknownPlayers, ", "))
	}
	if len(s.UnknownHoles) > 0 {
		fmt.Fprintf(w, "Holes not on the course: %s\n", joinInts(s.UnknownHoles))
	}
	if len(s.ParMismatches) > 0 {
		fmt.Fprintf(w, "Card par differs from the course on holes: %s\n", joinInts(s.ParMismatches))
	}
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
