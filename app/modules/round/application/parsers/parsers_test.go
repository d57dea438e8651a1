package parsers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFactory_GetParser(t *testing.T) {
	factory := NewFactory()
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "csv file", filename: "round1.csv", want: "csv"},
		{name: "upper case", filename: "ROUND1.CSV", want: "csv"},
		{name: "tsv file", filename: "round1.tsv", want: "csv"},
		{name: "xlsx file", filename: "scores.xlsx", want: "xlsx"},
		{name: "legacy xls", filename: "scores.xls", wantErr: true},
		{name: "no extension", filename: "scores", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := factory.GetParser(tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			switch tt.want {
			case "csv":
				_, ok := parser.(*CSVParser)
				require.True(t, ok)
			case "xlsx":
				_, ok := parser.(*XLSXParser)
				require.True(t, ok)
			}
		})
	}
}

func TestCSVParser_Parse(t *testing.T) {
	parser := NewCSVParser()
	tests := []struct {
		name        string
		data        string
		wantErr     string
		wantPars    map[int]int
		wantPlayers []PlayerRow
	}{
		{
			name: "par row and total column",
			data: "Name,1,2,3,Total\nPar,4,3,5,12\nAnn,5,3,4,12\nBea,4,-,6,10\n",
			wantPars: map[int]int{1: 4, 2: 3, 3: 5},
			wantPlayers: []PlayerRow{
				{Name: "Ann", Line: 3, Strokes: map[int]int{1: 5, 2: 3, 3: 4}},
				{Name: "Bea", Line: 4, Strokes: map[int]int{1: 4, 3: 6}},
			},
		},
		{
			name:     "no par row and hole prefixed headers",
			data:     "Player,Hole 1,H2,hole_3\nCal,3,0,5\n",
			wantPars: map[int]int{},
			wantPlayers: []PlayerRow{
				{Name: "Cal", Line: 2, Strokes: map[int]int{1: 3, 3: 5}},
			},
		},
		{
			name:     "tab separated with bom and crlf",
			data:     "\xEF\xBB\xBFName\t1\t2\r\nDee\t4\t4\r\n",
			wantPars: map[int]int{},
			wantPlayers: []PlayerRow{
				{Name: "Dee", Line: 2, Strokes: map[int]int{1: 4, 2: 4}},
			},
		},
		{
			name:     "back nine only",
			data:     "Name,10,11\nEd,5,4\n,,\n",
			wantPars: map[int]int{},
			wantPlayers: []PlayerRow{
				{Name: "Ed", Line: 2, Strokes: map[int]int{10: 5, 11: 4}},
			},
		},
		{name: "non-numeric stroke", data: "Name,1\nAnn,x\n", wantErr: "non-numeric"},
		{name: "negative stroke", data: "Name,1\nAnn,-2\n", wantErr: "negative"},
		{name: "no hole columns", data: "Name,Total\nAnn,72\n", wantErr: "no hole columns"},
		{name: "no players", data: "Name,1,2\nPar,4,4\n", wantErr: "no player score rows"},
		{name: "empty", data: "  \n", wantErr: "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := parser.Parse([]byte(tt.data))
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantPars, card.Pars)
			require.Equal(t, tt.wantPlayers, card.Players)
		})
	}
}

func TestXLSXParser_Parse(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Name", 1, 2, 3, "Total"},
		{"Par", 4, 4, 3, 11},
		{"Ann", 4, 5, 2, 11},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	card, err := NewXLSXParser().Parse(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, map[int]int{1: 4, 2: 4, 3: 3}, card.Pars)
	require.Len(t, card.Players, 1)
	require.Equal(t, "Ann", card.Players[0].Name)
	require.Equal(t, []int{1, 2, 3}, card.Players[0].HoleNumbers())
	require.Equal(t, 2, card.Players[0].Strokes[3])
}

func TestXLSXParser_RejectsCSVBytes(t *testing.T) {
	_, err := NewXLSXParser().Parse([]byte("Name,1\nAnn,4\n"))
	require.ErrorContains(t, err, "Hint")
}

func TestPlayerRow_HoleNumbersAscending(t *testing.T) {
	row := PlayerRow{Name: "Bob", Strokes: map[int]int{18: 4, 3: 5, 10: 3, 1: 4}}
	require.Equal(t, []int{1, 3, 10, 18}, row.HoleNumbers())
	require.Empty(t, PlayerRow{}.HoleNumbers())
}
