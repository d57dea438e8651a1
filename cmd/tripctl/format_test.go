package main

import (
	"bytes"
	"strings"
	"testing"

	leaderboardservice "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/domain"
	roundservice "github.com/Black-And-White-Club/trip-scorer/app/modules/round/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintStandings(t *testing.T) {
	var buf bytes.Buffer
	err := printStandings(&buf, &leaderboardservice.Standings{
		Entries: []leaderboarddomain.LeaderboardEntry{
			{PlayerName: "Ann", TotalPoints: 12.5, RoundsPlayed: 2, Rank: 1, IsTied: true, Breakdown: leaderboarddomain.PointsBreakdown{Placement: 10, Birdies: 2.5}},
			{PlayerName: "Bob", TotalPoints: 12.5, RoundsPlayed: 2, Rank: 1, IsTied: true},
			{PlayerName: "Cy", TotalPoints: 3, RoundsPlayed: 1, Rank: 3},
		},
		RoundsCounted: 2,
		Version:       "abc",
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "RANK"))
	assert.Contains(t, lines[1], "T1st")
	assert.Contains(t, lines[1], "12.5")
	assert.True(t, strings.HasPrefix(lines[3], "3rd "))
	assert.Equal(t, "2 round(s) counted, version abc", lines[5])
}

func TestPrintStandings_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printStandings(&buf, &leaderboardservice.Standings{}))
	assert.Equal(t, "No completed rounds yet.\n", buf.String())
}

func TestPrintRoundSheet(t *testing.T) {
	var buf bytes.Buffer
	err := printRoundSheet(&buf, &leaderboardservice.RoundSheet{
		RoundNumber: 2,
		CourseName:  "Dunes",
		TotalPar:    72,
		Results: []leaderboarddomain.RoundResult{
			{PlayerName: "Ann", TotalStrokes: 70, ScoreToPar: -2, Rank: 1, Points: leaderboarddomain.PointsBreakdown{Total: 11}},
			{PlayerName: "Bob", TotalStrokes: 72, ScoreToPar: 0, Rank: 2},
			{PlayerName: "Cy", TotalStrokes: 75, ScoreToPar: 3, Rank: 3},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Round 2 at Dunes (in progress), par 72\n"))
	assert.Contains(t, out, "-2")
	assert.Contains(t, out, " E ")
	assert.Contains(t, out, "+3")
}

func TestPrintImportSummary(t *testing.T) {
	var buf bytes.Buffer
	printImportSummary(&buf, &roundservice.ImportSummary{
		Imported:       5,
		PlayerIDs:      []string{"p1", "p2"},
		UnknownPlayers: []string{"Carl"},
		UnknownHoles:   []int{4},
		ParMismatches:  []int{2, 3},
	})
	assert.Equal(t, "Imported 5 score(s) for 2 player(s).\n"+
		"Unknown players skipped: Carl\n"+
		"Holes not on the course: 4\n"+
		"Card par differs from the course on holes: 2, 3\n", buf.String())
}
