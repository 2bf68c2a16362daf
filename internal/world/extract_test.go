package world

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/partviz/internal/geom"
	"github.com/san-kum/partviz/internal/sample"
)

func twoSpecies() *Snapshot {
	s := NewSnapshot(geom.Vec3{X: 1, Y: 2, Z: 1})
	for i := 0; i < 5; i++ {
		s.Add("", Point{Pos: geom.Vec3{X: float64(i) * 0.1, Y: 0.5, Z: 0.5}, R: 0.01, Kind: "A"})
	}
	s.Add("", Point{Pos: geom.Vec3{X: 0.9, Y: 1.5, Z: 0.1}, R: 0.02, Kind: "B"})
	s.Add("", Point{Pos: geom.Vec3{X: 0.8, Y: 1.0, Z: 0.2}, R: 0.03, Kind: "B"})
	return s
}

func TestExtractAll(t *testing.T) {
	got, err := Extract(twoSpecies(), Options{})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 species, got %d", len(got))
	}
	if got[0].Name != "A" || got[1].Name != "B" {
		t.Errorf("expected first-seen order A, B; got %s, %s", got[0].Name, got[1].Name)
	}
	if got[0].Len() != 5 || got[1].Len() != 2 {
		t.Errorf("unexpected counts %d, %d", got[0].Len(), got[1].Len())
	}
	// size = 30 / max edge * max radius
	if math.Abs(got[1].Size-30.0/2.0*0.03) > 1e-12 {
		t.Errorf("unexpected size %f", got[1].Size)
	}
}

func TestExtractMaxCount(t *testing.T) {
	w := twoSpecies()
	original := map[float64]bool{}
	for _, e := range w.ListParticles("A") {
		original[e.Particle.Position().X] = true
	}

	got, err := Extract(w, Options{MaxCount: 1})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	for _, sd := range got {
		if sd.Len() != 1 {
			t.Errorf("species %s: expected 1 particle, got %d", sd.Name, sd.Len())
		}
	}
	if !original[got[0].X[0]] {
		t.Errorf("sampled x %f not from species A", got[0].X[0])
	}
}

func TestExtractSeededSampling(t *testing.T) {
	w := twoSpecies()
	a, _ := Extract(w, Options{MaxCount: 3, Source: sample.Seeded(11)})
	b, _ := Extract(w, Options{MaxCount: 3, Source: sample.Seeded(11)})
	for i := range a[0].X {
		if a[0].X[i] != b[0].X[i] {
			t.Fatalf("seeded extraction not reproducible at %d", i)
		}
	}
}

func TestExtractSpeciesListAndPredicate(t *testing.T) {
	w := twoSpecies()
	got, err := Extract(w, Options{
		Species:   []string{"B", "missing", "A"},
		Predicate: func(e Entry) bool { return e.Particle.Position().X < 0.85 },
	})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 species, got %d", len(got))
	}
	if got[0].Name != "B" || got[0].Len() != 1 {
		t.Errorf("expected B with 1 particle, got %s with %d", got[0].Name, got[0].Len())
	}
	if got[1].Name != "A" || got[1].Len() != 5 {
		t.Errorf("expected A with 5 particles, got %s with %d", got[1].Name, got[1].Len())
	}
}

func TestExtractRadius(t *testing.T) {
	w := NewSnapshot(geom.Vec3{X: 10, Y: 20, Z: 40})
	w.Add("p", Point{Pos: geom.Vec3{}, Kind: "Z"})

	got, _ := Extract(w, Options{})
	if math.Abs(got[0].Radius-10*0.005) > 1e-12 {
		t.Errorf("expected fallback radius 0.05, got %f", got[0].Radius)
	}

	got, _ = Extract(w, Options{Radius: 2})
	if got[0].Radius != 2 || math.Abs(got[0].Size-30.0/40*2) > 1e-12 {
		t.Errorf("override radius not applied: r=%f size=%f", got[0].Radius, got[0].Size)
	}
}

func TestExtractErrors(t *testing.T) {
	if _, err := Extract(nil, Options{}); !errors.Is(err, ErrNilWorld) {
		t.Errorf("expected ErrNilWorld, got %v", err)
	}
	if _, err := Extract(NewSnapshot(geom.Vec3{}), Options{}); !errors.Is(err, ErrBadEdges) {
		t.Errorf("expected ErrBadEdges, got %v", err)
	}
}
