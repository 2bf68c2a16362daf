package viz

import (
	"fmt"

	"github.com/san-kum/partviz/internal/frame"
	"github.com/san-kum/partviz/internal/geom"
	"github.com/san-kum/partviz/internal/scene"
)

// Layer is one drawable entry of a scene.
type Layer struct {
	Name   string
	Color  string
	Points []geom.Vec3
	// Line joins consecutive points instead of drawing dots.
	Line bool
}

// Frames is what the viewer draws: one or more frames of layers inside a
// common box.
type Frames struct {
	Box    frame.Box
	Frames [][]Layer
	Legend []Layer
}

// FramesOf converts a particles or movie model. Volume and debug plots have
// no terminal rendition and are skipped.
func FramesOf(wd *scene.Widget) (*Frames, error) {
	switch m := wd.Model.(type) {
	case scene.Model:
		return modelFrames(m), nil
	case scene.MovieModel:
		return movieFrames(m), nil
	default:
		return nil, fmt.Errorf("viz: cannot draw %s model", wd.Template)
	}
}

func modelFrames(m scene.Model) *Frames {
	var layers []Layer
	for _, p := range m.Plots {
		coords, ok := p.Data.(scene.Coords)
		if !ok {
			continue
		}
		l := Layer{Name: p.Options.Name, Color: p.Options.Color, Points: coords.Points()}
		switch p.Type {
		case scene.TypeParticles:
		case scene.TypeLine:
			l.Line = true
			if len(p.Options.Colors) > 0 {
				l.Color = p.Options.Colors[0]
			}
		default:
			continue
		}
		layers = append(layers, l)
	}
	f := &Frames{Box: rangeOr(m.Options.Range), Frames: [][]Layer{layers}}
	f.Legend = legendOf(layers)
	return f
}

func movieFrames(m scene.MovieModel) *Frames {
	f := &Frames{Box: rangeOr(m.Options.Range)}
	n := 0
	for _, frames := range m.Data {
		for _, fr := range frames {
			n = max(n, fr.T+1)
		}
	}
	f.Frames = make([][]Layer, n)
	for i, frames := range m.Data {
		l := Layer{Name: m.Names[i], Color: m.Colors[i]}
		f.Legend = append(f.Legend, l)
		for _, fr := range frames {
			l.Points = fr.Coords.Points()
			f.Frames[fr.T] = append(f.Frames[fr.T], l)
		}
	}
	return f
}

func legendOf(layers []Layer) []Layer {
	out := make([]Layer, len(layers))
	for i, l := range layers {
		out[i] = Layer{Name: l.Name, Color: l.Color}
	}
	return out
}

func rangeOr(b *frame.Box) frame.Box {
	if b == nil {
		return frame.FromPoints(nil)
	}
	return *b
}

// Draw renders one frame of layers into c.
func Draw(c *Canvas, layers []Layer, box frame.Box, cam *Camera, showBox bool) {
	w := NewWireframe()
	for _, l := range layers {
		if l.Line {
			w.AddPath(l.Points, l.Color)
			continue
		}
		for _, p := range l.Points {
			w.AddPoint(p, l.Color)
		}
	}
	if showBox {
		Render3D(c, BoxWireframe(box, boxColor), cam, box)
	}
	Render3D(c, w, cam, box)
}
