package scene

import (
	"fmt"
	"math"

	"github.com/san-kum/partviz/internal/colorscale"
	"github.com/san-kum/partviz/internal/observer"
)

const (
	defaultXLabel = "Time"
	defaultYLabel = "The Number of Molecules"
)

// ChartOptions configures NumberChart.
type ChartOptions struct {
	Width, Height int
	// X names the series on the x axis; empty plots against time.
	X string
	// Y names the plotted series; empty plots every target.
	Y      []string
	XLabel string
	YLabel string
	// XLim and YLim override the data ranges when set.
	XLim *[2]float64
	YLim *[2]float64
	// HideLegend suppresses the legend.
	HideLegend bool
}

// Diagram is one line of a chart pane.
type Diagram struct {
	Type    string         `json:"type"`
	Data    string         `json:"data"`
	Options DiagramOptions `json:"options"`
}

// DiagramOptions binds a diagram to data columns.
type DiagramOptions struct {
	X           string  `json:"x"`
	Y           string  `json:"y"`
	StrokeWidth float64 `json:"stroke_width"`
	Title       string  `json:"title"`
	Color       string  `json:"color"`
}

// PaneOptions are the axes of a chart pane.
type PaneOptions struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	XRange [2]float64 `json:"xrange"`
	YRange [2]float64 `json:"yrange"`
	XLabel string     `json:"x_label"`
	YLabel string     `json:"y_label"`
	Legend bool       `json:"legend"`
	Zoom   bool       `json:"zoom"`
}

// Pane is one chart area.
type Pane struct {
	Type     string      `json:"type"`
	Diagrams []Diagram   `json:"diagrams"`
	Options  PaneOptions `json:"options"`
}

// ChartModel is the model consumed by the chart template.
type ChartModel struct {
	Data  map[string][]map[string]float64 `json:"data"`
	Panes []Pane                          `json:"panes"`
}

// ChartSeries is a resolved x/y pair, shared with image renderers.
type ChartSeries struct {
	Name  string
	Color string
	X     []float64
	Y     []float64
}

// ChartData is the resolved content of a number chart.
type ChartData struct {
	Series []ChartSeries
	XLabel string
	YLabel string
	XRange [2]float64
	YRange [2]float64
	Legend bool
}

// ResolveChart selects series from obs and assigns their colors. It fails
// with observer.ErrUnknownSeries when opts.X is not a target.
func ResolveChart(obs observer.NumberObserver, opts ChartOptions, colors *colorscale.Scale) (*ChartData, error) {
	return ResolveCharts([]observer.NumberObserver{obs}, opts, colors)
}

// ResolveCharts overlays the series of several observers on one pair of
// axes. Ranges cover every observer; labels follow the first.
func ResolveCharts(obs []observer.NumberObserver, opts ChartOptions, colors *colorscale.Scale) (*ChartData, error) {
	_, cd, err := resolveAll(obs, opts, colors)
	return cd, err
}

// resolveAll returns each observer's series and their overlay.
func resolveAll(obs []observer.NumberObserver, opts ChartOptions, colors *colorscale.Scale) ([]*ChartData, *ChartData, error) {
	if len(obs) == 0 {
		return nil, nil, ErrNoSeries
	}
	colors = scaleOrNew(colors)
	parts := make([]*ChartData, 0, len(obs))
	for i, o := range obs {
		part, err := resolveOne(o, opts, colors)
		if err != nil {
			if len(obs) > 1 {
				err = fmt.Errorf("observer %d: %w", i, err)
			}
			return nil, nil, err
		}
		parts = append(parts, part)
	}

	cd := *parts[0]
	cd.Series = nil
	for _, part := range parts {
		cd.Series = append(cd.Series, part.Series...)
		cd.XRange = union(cd.XRange, part.XRange)
		cd.YRange = union(cd.YRange, part.YRange)
	}
	if opts.XLim != nil {
		cd.XRange = *opts.XLim
	}
	if opts.YLim != nil {
		cd.YRange = *opts.YLim
	}
	return parts, &cd, nil
}

func resolveOne(obs observer.NumberObserver, opts ChartOptions, colors *colorscale.Scale) (*ChartData, error) {
	sel, err := observer.Select(obs, opts.X, opts.Y)
	if err != nil {
		return nil, err
	}
	if len(sel.Y) == 0 {
		return nil, ErrNoSeries
	}

	data := obs.Data()
	xs := observer.Column(data, sel.X.Column)
	cd := &ChartData{
		XLabel: opts.XLabel,
		YLabel: opts.YLabel,
		Legend: !opts.HideLegend,
		XRange: span(xs),
	}
	if cd.XLabel == "" {
		cd.XLabel = defaultXLabel
		if !sel.ByTime {
			cd.XLabel = fmt.Sprintf("The Number of Molecules [%s]", opts.X)
		}
	}
	if cd.YLabel == "" {
		cd.YLabel = defaultYLabel
	}

	var ys []float64
	for _, s := range sel.Y {
		col := observer.Column(data, s.Column)
		cd.Series = append(cd.Series, ChartSeries{Name: s.Name, Color: colors.Color(s.Name), X: xs, Y: col})
		ys = append(ys, col...)
	}
	cd.YRange = span(ys)
	return cd, nil
}

func union(a, b [2]float64) [2]float64 {
	return [2]float64{math.Min(a[0], b[0]), math.Max(a[1], b[1])}
}

// span returns the min and max of v, or [0,1] when v is empty.
func span(v []float64) [2]float64 {
	if len(v) == 0 {
		return [2]float64{0, 1}
	}
	lo, hi := v[0], v[0]
	for _, x := range v[1:] {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	return [2]float64{lo, hi}
}

// NumberChart builds a line chart model of a number observer.
func NumberChart(obs observer.NumberObserver, opts ChartOptions, colors *colorscale.Scale) (*Widget, error) {
	return NumberCharts([]observer.NumberObserver{obs}, opts, colors)
}

// NumberCharts overlays several number observers in one chart. Each
// observer keeps its own data table, data1 for the first.
func NumberCharts(obs []observer.NumberObserver, opts ChartOptions, colors *colorscale.Scale) (*Widget, error) {
	colors = scaleOrNew(colors)
	parts, cd, err := resolveAll(obs, opts, colors)
	if err != nil {
		return nil, err
	}

	tables := make(map[string][]map[string]float64, len(parts))
	diagrams := make([]Diagram, 0, len(cd.Series))
	legend := make([]string, 0, len(cd.Series))
	j := 0
	for t, part := range parts {
		name := fmt.Sprintf("data%d", t+1)
		rows := make([]map[string]float64, len(part.Series[0].X))
		for i, x := range part.Series[0].X {
			rows[i] = map[string]float64{"x": x}
		}
		for _, s := range part.Series {
			j++
			key := fmt.Sprintf("y%d", j)
			for i, y := range s.Y {
				rows[i][key] = y
			}
			diagrams = append(diagrams, Diagram{
				Type: "line",
				Data: name,
				Options: DiagramOptions{
					X:           "x",
					Y:           key,
					StrokeWidth: lineThickness,
					Title:       s.Name,
					Color:       s.Color,
				},
			})
			legend = append(legend, s.Name)
		}
		tables[name] = rows
	}

	m := ChartModel{
		Data: tables,
		Panes: []Pane{{
			Type:     "rectangular",
			Diagrams: diagrams,
			Options: PaneOptions{
				Width:  opts.Width,
				Height: opts.Height,
				XRange: cd.XRange,
				YRange: cd.YRange,
				XLabel: cd.XLabel,
				YLabel: cd.YLabel,
				Legend: cd.Legend,
				Zoom:   true,
			},
		}},
	}
	return &Widget{
		ID:       newID("viz"),
		Template: TemplateChart,
		Model:    m,
		Colors:   colors.Config(),
		Legend:   legend,
	}, nil
}
