package roundservice

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Black-And-White-Club/trip-scorer/app/events"
	coursedb "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories"
	playerdb "github.com/Black-And-White-Club/trip-scorer/app/modules/player/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/app/modules/round/application/parsers"
	scoredb "github.com/Black-And-White-Club/trip-scorer/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/internal/operation"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/uptrace/bun"
)

// SourceImport marks scores written from an uploaded scorecard.
const SourceImport = "import"

func (s *RoundService) ImportScorecard(ctx context.Context, roundID string, req ImportScorecardRequest) (ImportResult, error) {
	attributes := append(attrs(roundID), operation.Attr("file_name", req.FileName))
	return operation.Run(ctx, s.telemetry, "ImportScorecard", attributes, func(ctx context.Context) (ImportResult, error) {
		if err := httpapi.Validate(req); err != nil {
			return results.FailureResult[*ImportSummary, error](err), nil
		}
		parser, err := s.parsers.GetParser(req.FileName)
		if err != nil {
			return results.FailureResult[*ImportSummary, error](fmt.Errorf("%w: %v", ErrUnreadableScorecard, err)), nil
		}
		card, err := parser.Parse(req.Data)
		if err != nil {
			return results.FailureResult[*ImportSummary, error](fmt.Errorf("%w: %v", ErrUnreadableScorecard, err)), nil
		}

		result, err := operation.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (ImportResult, error) {
			round, err := s.loadRound(ctx, db, roundID)
			if err != nil {
				return results.FromError[*ImportSummary](err)
			}
			if round.IsComplete {
				return results.FailureResult[*ImportSummary, error](ErrRoundComplete), nil
			}
			course, err := s.courses.GetCourse(ctx, db, round.CourseID)
			if err != nil {
				return ImportResult{}, err
			}
			players, err := s.roster.ListPlayers(ctx, db)
			if err != nil {
				return ImportResult{}, err
			}

			summary, scores := buildImport(roundID, card, course.Holes, players)
			if len(scores) == 0 {
				return results.FailureResult[*ImportSummary, error](ErrNothingImported), nil
			}
			if err := s.scores.UpsertScores(ctx, db, scores); err != nil {
				return ImportResult{}, err
			}
			if err := s.repo.TouchRound(ctx, db, roundID); err != nil {
				return ImportResult{}, err
			}
			return results.SuccessResult[*ImportSummary, error](summary), nil
		})

		if err == nil && result.IsSuccess() {
			summary := *result.Success
			s.publish(ctx, events.ScoreRecordedV1, events.ScoreRecordedPayloadV1{
				RoundID:   roundID,
				PlayerIDs: summary.PlayerIDs,
				Count:     summary.Imported,
				Source:    SourceImport,
			})
		}
		return result, err
	})
}

// buildImport matches card rows to players by name or nickname and cells to
// holes by number. When a player appears on several rows the last value for
// a hole wins.
func buildImport(roundID string, card *parsers.Scorecard, holes []*coursedb.Hole, players []playerdb.Player) (*ImportSummary, []scoredb.Score) {
	byName := make(map[string]string, len(players)*2)
	for _, p := range players {
		if p.Nickname != "" {
			byName[normalizeName(p.Nickname)] = p.ID
		}
	}
	for _, p := range players {
		byName[normalizeName(p.Name)] = p.ID
	}

	byNumber := make(map[int]*coursedb.Hole, len(holes))
	for _, h := range holes {
		byNumber[h.HoleNumber] = h
	}

	summary := &ImportSummary{RoundID: roundID, PlayerIDs: []string{}}

	type key struct {
		player string
		hole   string
	}
	var order []key
	strokes := make(map[key]int)
	unknownHoles := make(map[int]bool)
	unknownPlayers := make(map[string]bool)

	for _, row := range card.Players {
		playerID, ok := byName[normalizeName(row.Name)]
		if !ok {
			if !unknownPlayers[normalizeName(row.Name)] {
				unknownPlayers[normalizeName(row.Name)] = true
				summary.UnknownPlayers = append(summary.UnknownPlayers, row.Name)
			}
			continue
		}

		for _, number := range row.HoleNumbers() {
			hole, ok := byNumber[number]
			if !ok {
				unknownHoles[number] = true
				continue
			}
			k := key{player: playerID, hole: hole.ID}
			if _, seen := strokes[k]; !seen {
				order = append(order, k)
			}
			strokes[k] = row.Strokes[number]
		}
	}

	scores := make([]scoredb.Score, 0, len(order))
	for _, k := range order {
		scores = append(scores, scoredb.Score{
			RoundID:  roundID,
			PlayerID: k.player,
			HoleID:   k.hole,
			Strokes:  strokes[k],
		})
		summary.PlayerIDs = append(summary.PlayerIDs, k.player)
	}
	slices.Sort(summary.PlayerIDs)
	summary.PlayerIDs = slices.Compact(summary.PlayerIDs)
	summary.Imported = len(scores)

	for number := range unknownHoles {
		summary.UnknownHoles = append(summary.UnknownHoles, number)
	}
	slices.Sort(summary.UnknownHoles)

	for number, par := range card.Pars {
		if hole, ok := byNumber[number]; ok && hole.Par != par {
			summary.ParMismatches = append(summary.ParMismatches, number)
		}
	}
	slices.Sort(summary.ParMismatches)

	return summary, scores
}

// normalizeName folds case and inner whitespace so "ann  LEE" matches "Ann Lee".
func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
