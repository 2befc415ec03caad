package gauntletservice

import (
	"bytes"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	gauntletdb "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/infrastructure/repositories"
)

// ChartPalette carries the colors used for progression charts.
type ChartPalette struct {
	Background  drawing.Color
	PrimaryLine drawing.Color
	AccentLine  drawing.Color
	TextColor   drawing.Color
}

// DefaultChartPalette is the club's boathouse colors: navy on cream with
// a gold accent.
var DefaultChartPalette = ChartPalette{
	Background:  drawing.Color{R: 0xF7, G: 0xF4, B: 0xEC, A: 0xFF},
	PrimaryLine: drawing.Color{R: 0x1B, G: 0x2A, B: 0x4A, A: 0xFF},
	AccentLine:  drawing.Color{R: 0xC9, G: 0xA2, B: 0x27, A: 0xFF},
	TextColor:   drawing.Color{R: 0x2B, G: 0x2B, B: 0x2B, A: 0xFF},
}

// GenerateProgressionChart produces a PNG line chart of a lineup's rank
// over time from its progression entries. Rank 1 renders at the top.
func GenerateProgressionChart(history []gauntletdb.Progression, palette ChartPalette) ([]byte, error) {
	if len(history) < 2 {
		return renderNoDataPlaceholder(palette)
	}

	xValues := make([]time.Time, len(history))
	yValues := make([]float64, len(history))
	for i, entry := range history {
		xValues[i] = entry.OccurredAt
		yValues[i] = float64(entry.ToRank)
	}

	mainSeries := chart.TimeSeries{
		Name:    "Rank",
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: palette.PrimaryLine,
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    palette.AccentLine,
		},
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
		},
		YAxis: chart.YAxis{
			Name: "Rank",
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
			Range: &chart.ContinuousRange{
				Descending: true, // rank 1 at the top
			},
		},
		Series: []chart.Series{mainSeries},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "Not enough progression data"
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
