package frame

import (
	"math"
	"testing"

	"github.com/san-kum/partviz/internal/geom"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-12 }

func assertBox(t *testing.T, name string, got, want Box) {
	t.Helper()
	for i := 0; i < 3; i++ {
		g, w := got.Axis(i), want.Axis(i)
		if !near(g[0], w[0]) || !near(g[1], w[1]) {
			t.Errorf("%s: axis %d: expected %v, got %v", name, i, w, g)
		}
	}
}

func TestFromExtents(t *testing.T) {
	tests := []struct {
		name       string
		lx, ly, lz float64
		want       Box
	}{
		{"tall y", 2, 4, 2, Box{X: Range{-1, 3}, Y: Range{0, 4}, Z: Range{-1, 3}}},
		{"cube", 1, 1, 1, Box{X: Range{0, 1}, Y: Range{0, 1}, Z: Range{0, 1}}},
		{"flat", 10, 10, 0, Box{X: Range{0, 10}, Y: Range{0, 10}, Z: Range{-5, 5}}},
	}

	for _, tt := range tests {
		assertBox(t, tt.name, FromExtents(tt.lx, tt.ly, tt.lz), tt.want)
	}
}

func TestFromPoints(t *testing.T) {
	tests := []struct {
		name   string
		points []geom.Vec3
		want   Box
	}{
		{"empty", nil, Box{X: Range{0, 1}, Y: Range{0, 1}, Z: Range{0, 1}}},
		{"two points", []geom.Vec3{{0, 0, 0}, {2, 4, 0}}, Box{X: Range{-1, 3}, Y: Range{0, 4}, Z: Range{-2, 2}}},
		{"single point", []geom.Vec3{{1, 2, 3}}, Box{X: Range{1, 1}, Y: Range{2, 2}, Z: Range{3, 3}}},
		{"offset cloud", []geom.Vec3{{10, 10, 10}, {12, 11, 10}}, Box{X: Range{10, 12}, Y: Range{9.5, 11.5}, Z: Range{9, 11}}},
	}

	for _, tt := range tests {
		assertBox(t, tt.name, FromPoints(tt.points), tt.want)
	}
}

func TestFramesAreCubesCenteredOnInput(t *testing.T) {
	points := []geom.Vec3{{-3, 0.5, 7}, {1, 2, 9}, {0, -4, 8}}
	b := FromPoints(points)
	lo, hi, _ := Bounds(points)

	w := b.X.Width()
	if !near(b.Y.Width(), w) || !near(b.Z.Width(), w) {
		t.Errorf("ranges not isometric: %v", b.Size())
	}
	for i := 0; i < 3; i++ {
		mid := (lo.Axis(i) + hi.Axis(i)) / 2
		if !near(b.Axis(i).Center(), mid) {
			t.Errorf("axis %d: center %f, expected %f", i, b.Axis(i).Center(), mid)
		}
	}

	e := FromExtents(3, 5, 1)
	if !near(e.X.Width(), 5) || !near(e.Y.Width(), 5) || !near(e.Z.Width(), 5) {
		t.Errorf("extent frame not isometric: %v", e.Size())
	}
	if e.Center() != (geom.Vec3{X: 1.5, Y: 2.5, Z: 0.5}) {
		t.Errorf("unexpected center %v", e.Center())
	}
}

func TestFromPointsIdempotent(t *testing.T) {
	points := []geom.Vec3{{1, 2, 3}, {4, 0, -1}}
	if FromPoints(points) != FromPoints(points) {
		t.Error("same input produced different frames")
	}
	if FromEdges(geom.Vec3{X: 2, Y: 4, Z: 2}) != FromExtents(2, 4, 2) {
		t.Error("FromEdges disagrees with FromExtents")
	}
}
