package leaderboardservice

import (
	"bytes"
	"fmt"

	leaderboarddomain "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// MaxChartPlayers caps the lines drawn on the standings chart.
const MaxChartPlayers = 8

// ChartPalette colours the standings chart.
type ChartPalette struct {
	Background drawing.Color
	TextColor  drawing.Color
	Lines      []drawing.Color
}

// DefaultPalette is a light palette with colours that stay distinct when
// printed in greyscale.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorWhite,
	TextColor:  drawing.ColorFromHex("263238"),
	Lines: []drawing.Color{
		drawing.ColorFromHex("1b5e20"),
		drawing.ColorFromHex("c62828"),
		drawing.ColorFromHex("1565c0"),
		drawing.ColorFromHex("f9a825"),
		drawing.ColorFromHex("6a1b9a"),
		drawing.ColorFromHex("00838f"),
		drawing.ColorFromHex("ef6c00"),
		drawing.ColorFromHex("4e342e"),
	},
}

// StandingsSeries is the cumulative points of the leading players after each
// complete round.
type StandingsSeries struct {
	RoundNumbers []int
	Players      []PlayerSeries
}

// PlayerSeries holds one player's running total, one value per round.
type PlayerSeries struct {
	Name   string
	Totals []float64
}

// chartSeriesFrom builds running totals for the first MaxChartPlayers
// entries of the standings.
func chartSeriesFrom(in *standingsInput, entries []leaderboarddomain.LeaderboardEntry) StandingsSeries {
	series := StandingsSeries{RoundNumbers: make([]int, len(in.rounds))}
	for i, r := range in.rounds {
		series.RoundNumbers[i] = r.RoundNumber
	}

	for _, e := range entries[:min(len(entries), MaxChartPlayers)] {
		ps := PlayerSeries{Name: e.PlayerName, Totals: make([]float64, len(in.perRound))}
		running := 0.0
		for i, comp := range in.perRound {
			running += comp.points[e.PlayerID].Total
			ps.Totals[i] = running
		}
		series.Players = append(series.Players, ps)
	}
	return series
}

// RenderStandingsChart produces a PNG line chart of cumulative points by
// round. Each line starts from zero before the first round.
func RenderStandingsChart(series StandingsSeries, palette ChartPalette) ([]byte, error) {
	if len(series.RoundNumbers) == 0 || len(series.Players) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	xValues := make([]float64, 0, len(series.RoundNumbers)+1)
	xValues = append(xValues, 0)
	for _, n := range series.RoundNumbers {
		xValues = append(xValues, float64(n))
	}

	maxY := 0.0
	lines := make([]chart.Series, 0, len(series.Players))
	for i, p := range series.Players {
		yValues := make([]float64, 0, len(p.Totals)+1)
		yValues = append(yValues, 0)
		yValues = append(yValues, p.Totals...)
		for _, y := range p.Totals {
			maxY = max(maxY, y)
		}

		color := palette.Lines[i%len(palette.Lines)]
		lines = append(lines, chart.ContinuousSeries{
			Name:    p.Name,
			XValues: xValues,
			YValues: yValues,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotWidth:    3,
				DotColor:    color,
			},
		})
	}

	graph := chart.Chart{
		Width:  900,
		Height: 450,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name: "Round",
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
			Range: &chart.ContinuousRange{Min: 0, Max: xValues[len(xValues)-1]},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Points",
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
			// An explicit range keeps a chart of all-zero totals renderable.
			Range: &chart.ContinuousRange{Min: 0, Max: max(maxY*1.1, 1)},
		},
		Series: lines,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render standings chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No completed rounds yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		// go-chart refuses to render without a visible series, so the
		// placeholder draws one in the background colour.
		Series: []chart.Series{chart.ContinuousSeries{
			XValues: []float64{0, 1},
			YValues: []float64{0, 1},
			Style:   chart.Style{StrokeColor: palette.Background},
		}},
		XAxis: chart.XAxis{Style: chart.Style{Hidden: true}},
		YAxis: chart.YAxis{Style: chart.Style{Hidden: true}},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
