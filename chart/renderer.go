// Package chart renders extracted numeric series as PNG images.
package chart

import (
	"bytes"
	"strconv"

	"github.com/msousa/jango"
	chart "github.com/wcharczuk/go-chart/v2"
)

// Compile-time interface verification.
var _ jango.ChartRenderer = (*Renderer)(nil)

// Chart dimensions in pixels.
const (
	chartWidth  = 800
	chartHeight = 500
)

// Renderer draws series as line or bar charts. Year-labeled series become
// line charts showing the trend; anything else becomes a bar chart.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render draws the series and returns the encoded PNG.
func (r *Renderer) Render(series *jango.Series) ([]byte, error) {
	if series == nil || len(series.Points) < jango.MinChartPoints {
		return nil, jango.Errorf(jango.EINVALID, "series needs at least %d points", jango.MinChartPoints)
	}

	years, ok := yearValues(series.Points)
	if ok {
		return renderLine(series, years)
	}
	return renderBar(series)
}

// yearValues returns the points' labels as numeric years, or false if any
// label is not a year.
func yearValues(points []jango.Point) ([]float64, bool) {
	years := make([]float64, len(points))
	for i, p := range points {
		year, err := strconv.Atoi(p.Label)
		if err != nil || year < 1900 || year > 2099 {
			return nil, false
		}
		years[i] = float64(year)
	}
	return years, true
}

func renderLine(series *jango.Series, xs []float64) ([]byte, error) {
	ys := make([]float64, len(series.Points))
	ticks := make([]chart.Tick, len(series.Points))
	for i, p := range series.Points {
		ys[i] = p.Value
		ticks[i] = chart.Tick{Value: xs[i], Label: p.Label}
	}

	graph := chart.Chart{
		Title:  chartTitle(series),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderBar(series *jango.Series) ([]byte, error) {
	bars := make([]chart.Value, len(series.Points))
	for i, p := range series.Points {
		bars[i] = chart.Value{Label: p.Label, Value: p.Value}
	}

	graph := chart.BarChart{
		Title:  chartTitle(series),
		Width:  chartWidth,
		Height: chartHeight,
		Bars:   bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func chartTitle(series *jango.Series) string {
	title := series.Title
	if title == "" {
		title = "Série extraída"
	}
	if series.Unit != "" {
		title += " (" + series.Unit + ")"
	}
	return title
}
