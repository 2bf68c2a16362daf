package world

import "github.com/san-kum/partviz/internal/geom"

// Particle is a single simulated particle.
type Particle interface {
	Position() geom.Vec3
	Radius() float64
	Species() string
}

// Entry pairs a particle with its engine-assigned id.
type Entry struct {
	ID       string
	Particle Particle
}

// World is the engine state being rendered. ListParticles with an empty
// species returns every particle.
type World interface {
	ListParticles(species string) []Entry
	EdgeLengths() geom.Vec3
}

// Predicate decides whether a particle is included.
type Predicate func(e Entry) bool

// SpeciesData is the extracted, display-ready view of one species.
type SpeciesData struct {
	Name   string
	X      []float64
	Y      []float64
	Z      []float64
	Radius float64
	// Size is the marker size relative to the largest world edge.
	Size float64
}

// Len returns the number of particles kept.
func (s SpeciesData) Len() int { return len(s.X) }

// Points returns the kept positions.
func (s SpeciesData) Points() []geom.Vec3 {
	pts := make([]geom.Vec3, len(s.X))
	for i := range s.X {
		pts[i] = geom.Vec3{X: s.X[i], Y: s.Y[i], Z: s.Z[i]}
	}
	return pts
}
