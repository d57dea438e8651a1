package parsers

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Scorecard is a parsed hole-by-hole card.
type Scorecard struct {
	// Pars maps hole number to the par printed on the card. Empty when the
	// card has no par row.
	Pars    map[int]int
	Players []PlayerRow
}

// PlayerRow is one player's line. Blank, "-" and zero cells are omitted.
type PlayerRow struct {
	Name    string
	Line    int
	Strokes map[int]int
}

// HoleNumbers returns the holes the row has strokes for, ascending.
func (p PlayerRow) HoleNumbers() []int {
	holes := make([]int, 0, len(p.Strokes))
	for h := range p.Strokes {
		holes = append(holes, h)
	}
	slices.Sort(holes)
	return holes
}

// ErrNoHoleColumns is returned when the header names no hole columns.
var ErrNoHoleColumns = errors.New("header row has no hole columns")

type holeColumn struct {
	index  int
	number int
}

// parseRows turns a header row, an optional par row and player rows into a
// Scorecard. Columns that are not hole numbers, such as Out, In or Total, are
// ignored.
func parseRows(rows [][]string) (*Scorecard, error) {
	rows = dropEmptyRows(rows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("scorecard is empty")
	}

	columns := findHoleColumns(rows[0])
	if len(columns) == 0 {
		return nil, ErrNoHoleColumns
	}

	card := &Scorecard{Pars: map[int]int{}}
	for i, row := range rows[1:] {
		line := i + 2
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}

		strokes, err := parseHoleCells(row, columns)
		if err != nil {
			return nil, fmt.Errorf("line %d (%s): %w", line, name, err)
		}

		if isPARRow(name) {
			card.Pars = strokes
			continue
		}
		if len(strokes) == 0 {
			continue
		}
		card.Players = append(card.Players, PlayerRow{Name: name, Line: line, Strokes: strokes})
	}

	if len(card.Players) == 0 {
		return nil, fmt.Errorf("no player score rows found")
	}
	return card, nil
}

// findHoleColumns matches headers like "1", "H1", "hole 1" or "Hole_1".
func findHoleColumns(header []string) []holeColumn {
	var columns []holeColumn
	for i, col := range header {
		if i == 0 {
			continue
		}
		norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(col)), " ", "")
		norm = strings.TrimPrefix(norm, "hole")
		norm = strings.TrimPrefix(norm, "h")
		norm = strings.TrimPrefix(norm, "_")
		if n, err := strconv.Atoi(norm); err == nil && n > 0 {
			columns = append(columns, holeColumn{index: i, number: n})
		}
	}
	return columns
}

func parseHoleCells(row []string, columns []holeColumn) (map[int]int, error) {
	values := make(map[int]int, len(columns))
	for _, c := range columns {
		if c.index >= len(row) {
			continue
		}
		val := strings.TrimSpace(row[c.index])
		if val == "" || val == "-" {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("hole %d: non-numeric value %q", c.number, val)
		}
		if n < 0 {
			return nil, fmt.Errorf("hole %d: negative value %d", c.number, n)
		}
		if n == 0 {
			continue
		}
		values[c.number] = n
	}
	return values, nil
}

// isPARRow checks if a row represents par values
func isPARRow(cellValue string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(cellValue))
	return normalized == "PAR" || normalized == "PARS"
}

func dropEmptyRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}
