package render

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/partviz/internal/frame"
	"github.com/san-kum/partviz/internal/geom"
	"github.com/san-kum/partviz/internal/scene"
)

const (
	defaultSnapshotSize = 350
	background          = "#0a0a0a"
)

type dot struct {
	x, y, depth, r float64
	color          string
}

// Snapshot writes an orthographic SVG view of a particles model, rotated by
// the widget camera about the center of the model range. Particles are drawn
// back to front; lines are drawn as polylines.
func Snapshot(w io.Writer, wd *scene.Widget, width, height int) error {
	m, ok := wd.Model.(scene.Model)
	if !ok {
		return fmt.Errorf("%w: svg snapshot of %s", ErrUnknownFormat, wd.Template)
	}
	if width <= 0 {
		width = orDefault(m.Options.WorldWidth)
	}
	if height <= 0 {
		height = orDefault(m.Options.WorldHeight)
	}

	box := frame.Box{X: frame.Range{0, 1}, Y: frame.Range{0, 1}, Z: frame.Range{0, 1}}
	if m.Options.Range != nil {
		box = *m.Options.Range
	}
	center := box.Center()
	extent := box.Size().Max()
	if extent <= 0 {
		extent = 1
	}
	// the rotated cube fits within its diagonal
	scale := math.Min(float64(width), float64(height)) / (extent * math.Sqrt(3))

	project := func(p geom.Vec3) (float64, float64, float64) {
		r := geom.Rotate(p.Sub(center), wd.Camera.Rotation)
		return float64(width)/2 + r.X*scale, float64(height)/2 - r.Y*scale, r.Z
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	var dots []dot
	for _, p := range m.Plots {
		coords, ok := p.Data.(scene.Coords)
		if !ok {
			continue
		}
		switch p.Type {
		case scene.TypeParticles:
			r := math.Max(1, p.Options.Size)
			for _, pt := range coords.Points() {
				x, y, d := project(pt)
				dots = append(dots, dot{x: x, y: y, depth: d, r: r, color: p.Options.Color})
			}
		case scene.TypeLine:
			if coords.Len() < 2 {
				continue
			}
			color := p.Options.Color
			if len(p.Options.Colors) > 0 {
				color = p.Options.Colors[0]
			}
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="%.1f" d="M`, color, math.Max(1, p.Options.Thickness)))
			for i, pt := range coords.Points() {
				x, y, _ := project(pt)
				if i == 0 {
					sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
				}
			}
			sb.WriteString("\"/>\n")
		}
	}

	sort.SliceStable(dots, func(i, j int) bool { return dots[i].depth < dots[j].depth })
	for _, d := range dots {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, d.x, d.y, d.r, d.color))
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func orDefault(v int) int {
	if v <= 0 {
		return defaultSnapshotSize
	}
	return v
}
