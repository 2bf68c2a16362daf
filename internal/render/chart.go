package render

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/partviz/internal/colorscale"
	"github.com/san-kum/partviz/internal/scene"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	defaultChartWidth  = 600
	defaultChartHeight = 400
	chartStroke        = 2.0
)

// Chart draws cd as a line chart image in FormatPNG or FormatSVG.
func Chart(w io.Writer, cd *scene.ChartData, width, height int, format string) error {
	var provider chart.RendererProvider
	switch format {
	case FormatPNG:
		provider = chart.PNG
	case FormatSVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("%w: chart as %q", ErrUnknownFormat, format)
	}
	if width <= 0 {
		width = defaultChartWidth
	}
	if height <= 0 {
		height = defaultChartHeight
	}

	series := make([]chart.Series, 0, len(cd.Series))
	for _, s := range cd.Series {
		col, err := chartColor(s.Color)
		if err != nil {
			return fmt.Errorf("series %s: %w", s.Name, err)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.X,
			YValues: s.Y,
			Style:   chart.Style{StrokeColor: col, StrokeWidth: chartStroke},
		})
	}

	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      chart.XAxis{Name: cd.XLabel, Range: axisRange(cd.XRange)},
		YAxis:      chart.YAxis{Name: cd.YLabel, Range: axisRange(cd.YRange)},
		Series:     series,
	}
	if cd.Legend {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch.Render(provider, w)
}

// ChartArtifact renders cd into an artifact.
func ChartArtifact(cd *scene.ChartData, name string, width, height int, format string, colors map[string]string) (Artifact, error) {
	var buf bytes.Buffer
	if err := Chart(&buf, cd, width, height, format); err != nil {
		return Artifact{}, err
	}
	id := "chart" + uuid.NewString()
	if name == "" {
		name = id
	}
	return Artifact{ID: id, Name: name, Kind: format, Created: time.Now(), Colors: colors, Body: buf.Bytes()}, nil
}

// axisRange widens a degenerate range so the chart has a drawable span.
func axisRange(r [2]float64) *chart.ContinuousRange {
	lo, hi := r[0], r[1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func chartColor(hex string) (drawing.Color, error) {
	r, g, b, err := colorscale.RGB(hex)
	if err != nil {
		return drawing.Color{}, err
	}
	return drawing.Color{R: r, G: g, B: b, A: 255}, nil
}
