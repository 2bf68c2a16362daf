package world

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/partviz/internal/geom"
)

func TestJSONRoundTrip(t *testing.T) {
	w := twoSpecies()
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, w); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := DecodeJSON(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Len() != w.Len() || got.EdgeLengths() != w.EdgeLengths() {
		t.Errorf("round trip changed snapshot: %d particles, edges %v", got.Len(), got.EdgeLengths())
	}
	if len(got.ListParticles("B")) != 2 {
		t.Errorf("expected 2 B particles")
	}
}

func TestDecodeCSV(t *testing.T) {
	in := `# exported snapshot
species,x,y,z,radius
A,0.1,0.2,0.3,0.01
B,1.5,0.5,2.5,0.02
A,0.4,3.0,0.1,0.01
`
	s, err := DecodeCSV(strings.NewReader(in), geom.Vec3{})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 particles, got %d", s.Len())
	}
	if s.EdgeLengths() != (geom.Vec3{X: 1.5, Y: 3.0, Z: 2.5}) {
		t.Errorf("expected edges from data, got %v", s.EdgeLengths())
	}
	if got := SpeciesNames(s); len(got) != 2 || got[0] != "A" {
		t.Errorf("unexpected species %v", got)
	}
}

func TestDecodeCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing column", "species,x,y\nA,1,2\n"},
		{"bad number", "species,x,y,z\nA,1,two,3\n"},
	}
	for _, tt := range tests {
		_, err := DecodeCSV(strings.NewReader(tt.in), geom.Vec3{X: 1, Y: 1, Z: 1})
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: expected ErrMalformed, got %v", tt.name, err)
		}
	}
}

func TestLoadSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "w.csv")
	if err := os.WriteFile(path, []byte("id,species,x,y,z\np1,A,1,1,1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSnapshot(path, geom.Vec3{X: 4, Y: 4, Z: 4})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.ListParticles("")[0].ID != "p1" {
		t.Errorf("expected id p1")
	}
	if s.EdgeLengths().X != 4 {
		t.Errorf("explicit edges ignored")
	}

	if _, err := LoadSnapshot(filepath.Join(dir, "missing.json"), geom.Vec3{}); err == nil {
		t.Error("expected error for missing file")
	}
}
