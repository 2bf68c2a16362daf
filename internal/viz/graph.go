package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/partviz/internal/colorscale"
	"github.com/san-kum/partviz/internal/scene"
)

// Graph plots the series of cd against their sample index, each in its
// color, with the x range in the caption and a legend below.
func Graph(cd *scene.ChartData, width, height int) string {
	if cd == nil || len(cd.Series) == 0 {
		return ""
	}
	data := make([][]float64, len(cd.Series))
	colors := make([]asciigraph.AnsiColor, len(cd.Series))
	legend := make([]Layer, len(cd.Series))
	for i, s := range cd.Series {
		data[i] = s.Y
		colors[i] = ansi(s.Color)
		legend[i] = Layer{Name: s.Name, Color: s.Color}
	}

	caption := fmt.Sprintf("%s [%g, %g]", cd.XLabel, cd.XRange[0], cd.XRange[1])
	graph := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(cd.YRange[0]),
		asciigraph.UpperBound(cd.YRange[1]),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(caption),
	)

	var b strings.Builder
	b.WriteString(Subtle.Render(cd.YLabel))
	b.WriteString("\n")
	b.WriteString(graph)
	b.WriteString("\n")
	if cd.Legend {
		b.WriteString(Legend(legend))
	}
	return b.String()
}

// ansi maps a hex color to the nearest entry of the xterm 6x6x6 color cube.
func ansi(hex string) asciigraph.AnsiColor {
	r, g, b, err := colorscale.RGB(hex)
	if err != nil {
		return asciigraph.Default
	}
	level := func(v uint8) int { return (int(v)*5 + 127) / 255 }
	return asciigraph.AnsiColor(16 + 36*level(r) + 6*level(g) + level(b))
}
