package viz

import (
	"math"
	"sort"

	"github.com/san-kum/partviz/internal/frame"
	"github.com/san-kum/partviz/internal/geom"
)

// Camera rotates the framed scene about its center and scales it onto the
// canvas. Perspective is a weak foreshortening along the view axis.
type Camera struct {
	Rotation geom.Vec3
	Zoom     float64
	Distance float64
}

func NewCamera(rot geom.Vec3) *Camera {
	return &Camera{Rotation: rot, Zoom: 1.0, Distance: 3.0}
}

func (c *Camera) RotateX(a float64) { c.Rotation.X += a }
func (c *Camera) RotateY(a float64) { c.Rotation.Y += a }
func (c *Camera) RotateZ(a float64) { c.Rotation.Z += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Project maps p inside box to sub-pixel coordinates of an sw x sh canvas.
// It returns x, y, depth and visibility.
func (c *Camera) Project(p geom.Vec3, box frame.Box, sw, sh int) (int, int, float64, bool) {
	rot := c.view(p, box)
	dist := c.Distance
	if rot.Z >= dist {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	// Braille sub-pixels are close to square on screen
	half := math.Min(float64(sw), float64(sh)) / 2
	sx := int(rot.X*scale*half) + sw/2
	sy := int(-rot.Y*scale*half) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// Behind reports whether p lies at or past the eye, where it has no projection.
func (c *Camera) Behind(p geom.Vec3, box frame.Box) bool {
	return c.view(p, box).Z >= c.Distance
}

// view normalizes p to the box, rotates and zooms it into camera space.
func (c *Camera) view(p geom.Vec3, box frame.Box) geom.Vec3 {
	extent := box.Size().Max()
	if extent <= 0 {
		extent = 1
	}
	return geom.Rotate(p.Sub(box.Center()).Scale(1/extent), c.Rotation).Scale(c.Zoom)
}

type Edge struct {
	Start, End geom.Vec3
	Color      string
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                        { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e geom.Vec3, c string) { w.Edges = append(w.Edges, Edge{s, e, c}) }
func (w *Wireframe) AddPoint(p geom.Vec3, c string)   { w.Edges = append(w.Edges, Edge{p, p, c}) }

// AddPath adds consecutive segments through points.
func (w *Wireframe) AddPath(points []geom.Vec3, c string) {
	for i := 1; i < len(points); i++ {
		w.AddEdge(points[i-1], points[i], c)
	}
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
	color          string
}

// Render3D draws the wireframe back to front. Edges with an endpoint behind
// the camera are skipped.
func Render3D(c *Canvas, w *Wireframe, cam *Camera, box frame.Box) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.SubSize()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		if cam.Behind(e.Start, box) || cam.Behind(e.End, box) {
			continue
		}
		x1, y1, d1, v1 := cam.Project(e.Start, box, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.End, box, sw, sh)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Color})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Plot(e.x1, e.y1, e.color)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2, e.color)
		}
	}
}

// BoxWireframe returns the 12 edges of box.
func BoxWireframe(box frame.Box, color string) *Wireframe {
	w := NewWireframe()
	lo := geom.Vec3{X: box.X[0], Y: box.Y[0], Z: box.Z[0]}
	hi := geom.Vec3{X: box.X[1], Y: box.Y[1], Z: box.Z[1]}
	v := []geom.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: hi.Y, Z: lo.Z}, {X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z}, {X: hi.X, Y: lo.Y, Z: hi.Z}, {X: hi.X, Y: hi.Y, Z: hi.Z}, {X: lo.X, Y: hi.Y, Z: hi.Z},
	}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]], color)
	}
	return w
}
