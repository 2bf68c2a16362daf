package scene

import (
	"fmt"

	"github.com/san-kum/partviz/internal/colorscale"
	"github.com/san-kum/partviz/internal/frame"
	"github.com/san-kum/partviz/internal/world"
)

// DebugObject is an auxiliary shape drawn alongside particles. Options keys
// depend on Type: box (width, height, depth), plane (width, height),
// sphere (radius), cylinder (radius, height).
type DebugObject struct {
	Type    string             `json:"type" yaml:"type"`
	X       float64            `json:"x" yaml:"x"`
	Y       float64            `json:"y" yaml:"y"`
	Z       float64            `json:"z" yaml:"z"`
	Options map[string]float64 `json:"options" yaml:"options"`
}

// DebugData is the column-wise payload of a DebugObject plot.
type DebugData struct {
	Type    []string             `json:"type"`
	X       []float64            `json:"x"`
	Y       []float64            `json:"y"`
	Z       []float64            `json:"z"`
	Options []map[string]float64 `json:"options"`
}

var debugShapes = map[string]bool{"box": true, "plane": true, "sphere": true, "cylinder": true}

func debugPlot(objs []DebugObject) (Plot, error) {
	d := DebugData{}
	for _, o := range objs {
		if !debugShapes[o.Type] {
			return Plot{}, fmt.Errorf("%w: %q", ErrUnknownShape, o.Type)
		}
		opts := o.Options
		if opts == nil {
			opts = map[string]float64{}
		}
		d.Type = append(d.Type, o.Type)
		d.X = append(d.X, o.X)
		d.Y = append(d.Y, o.Y)
		d.Z = append(d.Z, o.Z)
		d.Options = append(d.Options, opts)
	}
	return Plot{Type: TypeDebug, Data: d}, nil
}

// WorldOptions configures World.
type WorldOptions struct {
	Width, Height int
	Grid          bool
	Wireframe     bool
	Camera        Camera
	Debug         []DebugObject
	Extract       world.Options
}

// World builds a particles model with one entry per species. Axis ranges are
// the isometric frame of the world edges.
func World(w world.World, opts WorldOptions, colors *colorscale.Scale) (*Widget, error) {
	colors = scaleOrNew(colors)
	species, err := world.Extract(w, opts.Extract)
	if err != nil {
		return nil, err
	}

	m := Model{Plots: make([]Plot, 0, len(species)+1)}
	legend := make([]string, 0, len(species))
	for _, sp := range species {
		m.Plots = append(m.Plots, Plot{
			Type: TypeParticles,
			Data: Coords{X: sp.X, Y: sp.Y, Z: sp.Z},
			Options: PlotOptions{
				Name:  sp.Name,
				Color: colors.Color(sp.Name),
				Size:  sp.Size,
			},
		})
		legend = append(legend, sp.Name)
	}

	if opts.Debug != nil {
		p, err := debugPlot(opts.Debug)
		if err != nil {
			return nil, err
		}
		m.Plots = append(m.Plots, p)
	}

	box := frame.FromEdges(w.EdgeLengths())
	m.Options = Options{
		WorldWidth:  opts.Width,
		WorldHeight: opts.Height,
		Range:       &box,
		Grid:        opts.Grid,
	}
	if opts.Wireframe {
		m.Options.SpaceMode = spaceWireframe
	}

	return &Widget{
		ID:       newID("viz"),
		Template: TemplateParticles,
		Model:    m,
		Camera:   cameraOr(opts.Camera),
		Colors:   colors.Config(),
		Legend:   legend,
	}, nil
}

// Frame is one species' coordinates at frame index T.
type Frame struct {
	Coords Coords `json:"df"`
	T      int    `json:"t"`
}

// MovieModel is the model consumed by the movie template. Data[i] holds the
// frames of Names[i].
type MovieModel struct {
	Names   []string  `json:"names"`
	Data    [][]Frame `json:"data"`
	Colors  []string  `json:"colors"`
	Sizes   []float64 `json:"sizes"`
	Options Options   `json:"options"`
}

// MovieOptions configures Movie.
type MovieOptions struct {
	Width, Height int
	Grid          bool
	Extract       world.Options
}

// Movie builds a player model from consecutive worlds. Species appear in
// first-seen order over all frames; the range is framed from the first world.
func Movie(worlds []world.World, opts MovieOptions, colors *colorscale.Scale) (*Widget, error) {
	if len(worlds) == 0 {
		return nil, ErrNoWorlds
	}
	colors = scaleOrNew(colors)

	mm := MovieModel{}
	index := make(map[string]int)
	for t, w := range worlds {
		species, err := world.Extract(w, opts.Extract)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", t, err)
		}
		for _, sp := range species {
			i, ok := index[sp.Name]
			if !ok {
				i = len(mm.Names)
				index[sp.Name] = i
				mm.Names = append(mm.Names, sp.Name)
				mm.Data = append(mm.Data, nil)
				mm.Sizes = append(mm.Sizes, 0)
			}
			mm.Data[i] = append(mm.Data[i], Frame{Coords: Coords{X: sp.X, Y: sp.Y, Z: sp.Z}, T: t})
			mm.Sizes[i] = sp.Size
		}
	}
	mm.Colors = colors.Colors(mm.Names)

	box := frame.FromEdges(worlds[0].EdgeLengths())
	mm.Options = Options{
		WorldWidth:  opts.Width,
		WorldHeight: opts.Height,
		Range:       &box,
		Grid:        opts.Grid,
		SpaceMode:   spaceWireframe,
		Player:      true,
	}

	return &Widget{
		ID:       newID("movie"),
		Template: TemplateMovie,
		Model:    mm,
		Camera:   DefaultCamera,
		Colors:   colors.Config(),
		Legend:   mm.Names,
	}, nil
}
