package scene

import (
	"github.com/google/uuid"
	"github.com/san-kum/partviz/internal/colorscale"
	"github.com/san-kum/partviz/internal/frame"
	"github.com/san-kum/partviz/internal/geom"
)

// Plot types understood by the renderer.
const (
	TypeParticles = "Particles"
	TypeLine      = "Line"
	TypeVolume    = "Volume"
	TypeDebug     = "DebugObject"
)

// Template names.
const (
	TemplateParticles = "particles"
	TemplateMovie     = "movie"
	TemplateChart     = "chart"
)

const spaceWireframe = "wireframe"

// Coords holds per-axis coordinate arrays.
type Coords struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
	Z []float64 `json:"z"`
}

// Len returns the number of points.
func (c Coords) Len() int { return len(c.X) }

// Points returns the coordinates as vectors.
func (c Coords) Points() []geom.Vec3 {
	pts := make([]geom.Vec3, len(c.X))
	for i := range c.X {
		pts[i] = geom.Vec3{X: c.X[i], Y: c.Y[i], Z: c.Z[i]}
	}
	return pts
}

func coordsOf(pts []geom.Vec3) Coords {
	c := Coords{X: make([]float64, len(pts)), Y: make([]float64, len(pts)), Z: make([]float64, len(pts))}
	for i, p := range pts {
		c.X[i], c.Y[i], c.Z[i] = p.X, p.Y, p.Z
	}
	return c
}

// PlotOptions are per-entry display options.
type PlotOptions struct {
	Name      string   `json:"name,omitempty"`
	Color     string   `json:"color,omitempty"`
	Size      float64  `json:"size,omitempty"`
	Thickness float64  `json:"thickness,omitempty"`
	Colors    []string `json:"colors,omitempty"`
	Width     int      `json:"width,omitempty"`
	Height    int      `json:"height,omitempty"`
	Depth     int      `json:"depth,omitempty"`
	FPerRow   int      `json:"f_per_row,omitempty"`
	FPerCol   int      `json:"f_per_column,omitempty"`
}

// Plot is one draw entry. Data is Coords, a data URL string or DebugData.
type Plot struct {
	Type    string      `json:"type"`
	Data    any         `json:"data"`
	Options PlotOptions `json:"options"`
}

// Options are the global model options.
type Options struct {
	WorldWidth  int        `json:"world_width,omitempty"`
	WorldHeight int        `json:"world_height,omitempty"`
	Range       *frame.Box `json:"range,omitempty"`
	Autorange   bool       `json:"autorange"`
	Grid        bool       `json:"grid"`
	SaveImage   bool       `json:"save_image"`
	SpaceMode   string     `json:"space_mode,omitempty"`
	Player      bool       `json:"player,omitempty"`
}

// Model is the scene description consumed by the particles template.
type Model struct {
	Plots   []Plot  `json:"plots"`
	Options Options `json:"options"`
}

// Camera is the initial camera pose.
type Camera struct {
	Position geom.Vec3
	Rotation geom.Vec3
}

// DefaultCamera is the pose used when none is configured.
var DefaultCamera = Camera{
	Position: geom.Vec3{X: -22, Y: 23, Z: 32},
	Rotation: geom.Vec3{X: -0.6, Y: 0.5, Z: 0.6},
}

func cameraOr(c Camera) Camera {
	if c == (Camera{}) {
		return DefaultCamera
	}
	return c
}

// Widget is a built model ready for display.
type Widget struct {
	ID       string
	Template string
	Model    any
	Camera   Camera
	// Colors is the color mapping used while building, for legends.
	Colors map[string]string
	// Legend lists the keys drawn, in plot order.
	Legend []string
}

// newID returns a fresh element id with the given prefix.
func newID(prefix string) string { return prefix + uuid.NewString() }

func scaleOrNew(s *colorscale.Scale) *colorscale.Scale {
	if s == nil {
		return colorscale.New(nil)
	}
	return s
}
