package world

import (
	"github.com/san-kum/partviz/internal/geom"
	"github.com/san-kum/partviz/internal/sample"
)

const (
	// markerScale converts a radius into a marker size relative to the
	// largest world edge.
	markerScale = 30.0
	// fallbackRadius is the fraction of the smallest edge used for
	// particles without a positive radius.
	fallbackRadius = 0.005
)

// Options controls extraction.
type Options struct {
	// Radius overrides every particle radius when positive.
	Radius float64
	// Species restricts and orders the extracted species. When empty the
	// species are discovered in first-seen order.
	Species []string
	// MaxCount caps the particles kept per species; 0 keeps all.
	MaxCount int
	// Predicate filters particles before sampling.
	Predicate Predicate
	// Source draws the subsample. Nil draws unseeded.
	Source *sample.Source
}

// SpeciesNames returns the species present in w in first-seen order.
func SpeciesNames(w World) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, e := range w.ListParticles("") {
		sp := e.Particle.Species()
		if !seen[sp] {
			seen[sp] = true
			names = append(names, sp)
		}
	}
	return names
}

// Extract collects per-species coordinate arrays from w. Species with no
// particles left after filtering are omitted.
func Extract(w World, opts Options) ([]SpeciesData, error) {
	if w == nil {
		return nil, ErrNilWorld
	}
	edges := w.EdgeLengths()
	if !validEdges(edges) {
		return nil, ErrBadEdges
	}

	names := opts.Species
	if len(names) == 0 {
		names = SpeciesNames(w)
	}

	out := make([]SpeciesData, 0, len(names))
	for _, name := range names {
		entries := w.ListParticles(name)
		if opts.Predicate != nil {
			kept := entries[:0:0]
			for _, e := range entries {
				if opts.Predicate(e) {
					kept = append(kept, e)
				}
			}
			entries = kept
		}
		if len(entries) == 0 {
			continue
		}
		entries = sample.Pick(opts.Source, entries, opts.MaxCount)

		sd := SpeciesData{
			Name: name,
			X:    make([]float64, len(entries)),
			Y:    make([]float64, len(entries)),
			Z:    make([]float64, len(entries)),
		}
		r := opts.Radius
		for i, e := range entries {
			p := e.Particle.Position()
			sd.X[i], sd.Y[i], sd.Z[i] = p.X, p.Y, p.Z
			if opts.Radius <= 0 && e.Particle.Radius() > r {
				r = e.Particle.Radius()
			}
		}
		sd.Radius, sd.Size = markerSize(r, edges)
		out = append(out, sd)
	}
	return out, nil
}

// markerSize assumes every particle of a species shares one radius.
func markerSize(r float64, edges geom.Vec3) (radius, size float64) {
	if r <= 0 {
		r = edges.Min() * fallbackRadius
	}
	return r, markerScale / edges.Max() * r
}

func validEdges(e geom.Vec3) bool {
	return e.Max() > 0 && e.Min() >= 0 && !isBad(e.X) && !isBad(e.Y) && !isBad(e.Z)
}
