package scene

import (
	"strconv"

	"github.com/san-kum/partviz/internal/colorscale"
	"github.com/san-kum/partviz/internal/frame"
	"github.com/san-kum/partviz/internal/geom"
	"github.com/san-kum/partviz/internal/observer"
	"github.com/san-kum/partviz/internal/sample"
)

const lineThickness = 2

// TrajectoryOptions configures Trajectory.
type TrajectoryOptions struct {
	Width, Height int
	Grid          bool
	Wireframe     bool
	Camera        Camera
	// MaxCount caps the number of trajectories; 0 keeps all.
	MaxCount int
	Source   *sample.Source
}

// Trajectory builds one line per trajectory, named "1".."n" in draw order.
// Axis ranges are the isometric frame of every recorded point.
func Trajectory(obs observer.TrajectoryObserver, opts TrajectoryOptions, colors *colorscale.Scale) (*Widget, error) {
	colors = scaleOrNew(colors)
	paths := observer.SampleTrajectories(obs, opts.MaxCount, opts.Source)

	m := Model{Plots: make([]Plot, 0, len(paths))}
	legend := make([]string, 0, len(paths))
	var all []geom.Vec3
	for i, path := range paths {
		name := strconv.Itoa(i + 1)
		c := colors.Color(name)
		m.Plots = append(m.Plots, Plot{
			Type: TypeLine,
			Data: coordsOf(path),
			Options: PlotOptions{
				Name:      name,
				Thickness: lineThickness,
				Colors:    []string{c, c},
			},
		})
		legend = append(legend, name)
		all = append(all, path...)
	}

	box := frame.FromPoints(all)
	m.Options = Options{
		WorldWidth:  opts.Width,
		WorldHeight: opts.Height,
		Range:       &box,
		Grid:        opts.Grid,
		SaveImage:   true,
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
