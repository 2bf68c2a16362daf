package geom

import "math"

// Vec3 is a point or direction in world coordinates.
type Vec3 struct {
	X, Y, Z float64
}

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Axis returns the i-th component (0=x, 1=y, 2=z).
func (v Vec3) Axis(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Max returns the largest component.
func (v Vec3) Max() float64 { return math.Max(v.X, math.Max(v.Y, v.Z)) }

// Min returns the smallest component.
func (v Vec3) Min() float64 { return math.Min(v.X, math.Min(v.Y, v.Z)) }

func (v Vec3) Array() [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

func FromArray(a [3]float64) Vec3 { return Vec3{a[0], a[1], a[2]} }

// Rotate applies rotations about the x, y and z axes, in that order, by the
// angles in rot.
func Rotate(p, rot Vec3) Vec3 {
	cx, sx := math.Cos(rot.X), math.Sin(rot.X)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(rot.Y), math.Sin(rot.Y)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(rot.Z), math.Sin(rot.Z)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}
