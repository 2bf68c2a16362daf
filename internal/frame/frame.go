// Package frame computes cubic, centered axis ranges so 3D scenes render
// without anisotropic distortion.
package frame

import (
	"math"

	"github.com/san-kum/partviz/internal/geom"
)

// Range is an axis interval [min, max].
type Range [2]float64

func (r Range) Width() float64  { return r[1] - r[0] }
func (r Range) Center() float64 { return (r[0] + r[1]) * 0.5 }

// Box holds one range per axis.
type Box struct {
	X Range `json:"x"`
	Y Range `json:"y"`
	Z Range `json:"z"`
}

// Axis returns the range of axis i (0=x, 1=y, 2=z).
func (b Box) Axis(i int) Range {
	switch i {
	case 0:
		return b.X
	case 1:
		return b.Y
	default:
		return b.Z
	}
}

func (b Box) Center() geom.Vec3 {
	return geom.Vec3{X: b.X.Center(), Y: b.Y.Center(), Z: b.Z.Center()}
}

// Size returns the width of each axis.
func (b Box) Size() geom.Vec3 {
	return geom.Vec3{X: b.X.Width(), Y: b.Y.Width(), Z: b.Z.Width()}
}

// unit is the degenerate frame used when there is nothing to bound.
var unit = Box{X: Range{0, 1}, Y: Range{0, 1}, Z: Range{0, 1}}

// FromExtents frames a world of edge lengths lx, ly, lz. Every output range
// has the width of the largest edge; each axis is centered on e/2.
func FromExtents(lx, ly, lz float64) Box {
	m := math.Max(lx, math.Max(ly, lz))
	axis := func(e float64) Range { return Range{(e - m) * 0.5, (e + m) * 0.5} }
	return Box{X: axis(lx), Y: axis(ly), Z: axis(lz)}
}

// FromEdges is FromExtents for a vector of edge lengths.
func FromEdges(edges geom.Vec3) Box { return FromExtents(edges.X, edges.Y, edges.Z) }

// FromPoints frames a point cloud: each axis is centered on its own midpoint
// and widened to the largest axis width. An empty cloud frames to [0,1]^3.
func FromPoints(points []geom.Vec3) Box {
	lo, hi, ok := Bounds(points)
	if !ok {
		return unit
	}
	return cube(lo, hi)
}

// Bounds returns the per-axis minimum and maximum of points. ok is false when
// points is empty.
func Bounds(points []geom.Vec3) (lo, hi geom.Vec3, ok bool) {
	if len(points) == 0 {
		return geom.Vec3{}, geom.Vec3{}, false
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo = geom.Vec3{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = geom.Vec3{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	return lo, hi, true
}

func cube(lo, hi geom.Vec3) Box {
	m := hi.Sub(lo).Max()
	axis := func(a, b float64) Range { return Range{(a + b - m) * 0.5, (a + b + m) * 0.5} }
	return Box{X: axis(lo.X, hi.X), Y: axis(lo.Y, hi.Y), Z: axis(lo.Z, hi.Z)}
}
