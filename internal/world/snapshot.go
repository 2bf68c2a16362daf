package world

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/partviz/internal/geom"
)

// Point is a plain particle value.
type Point struct {
	Pos  geom.Vec3
	R    float64
	Kind string
}

func (p Point) Position() geom.Vec3 { return p.Pos }
func (p Point) Radius() float64     { return p.R }
func (p Point) Species() string     { return p.Kind }

// Snapshot is an in-memory World.
type Snapshot struct {
	Edges     geom.Vec3
	ids       []string
	particles []Point
}

// NewSnapshot creates an empty snapshot with the given edge lengths.
func NewSnapshot(edges geom.Vec3) *Snapshot {
	return &Snapshot{Edges: edges}
}

// Add appends a particle. An empty id is replaced by its insertion index.
func (s *Snapshot) Add(id string, p Point) {
	if id == "" {
		id = strconv.Itoa(len(s.particles))
	}
	s.ids = append(s.ids, id)
	s.particles = append(s.particles, p)
}

func (s *Snapshot) Len() int { return len(s.particles) }

func (s *Snapshot) EdgeLengths() geom.Vec3 { return s.Edges }

func (s *Snapshot) ListParticles(species string) []Entry {
	out := make([]Entry, 0, len(s.particles))
	for i, p := range s.particles {
		if species == "" || p.Kind == species {
			out = append(out, Entry{ID: s.ids[i], Particle: p})
		}
	}
	return out
}

type snapshotFile struct {
	EdgeLengths [3]float64     `json:"edge_lengths"`
	Particles   []particleJSON `json:"particles"`
}

type particleJSON struct {
	ID       string     `json:"id,omitempty"`
	Species  string     `json:"species"`
	Position [3]float64 `json:"position"`
	Radius   float64    `json:"radius"`
}

// DecodeJSON reads a snapshot of the form
//
//	{"edge_lengths": [1,1,1], "particles": [{"species": "A", "position": [0,0,0], "radius": 0.01}]}
func DecodeJSON(r io.Reader) (*Snapshot, error) {
	var f snapshotFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	s := NewSnapshot(geom.FromArray(f.EdgeLengths))
	for _, p := range f.Particles {
		s.Add(p.ID, Point{Pos: geom.FromArray(p.Position), R: p.Radius, Kind: p.Species})
	}
	return s, nil
}

// EncodeJSON writes s in the format read by DecodeJSON.
func EncodeJSON(w io.Writer, s *Snapshot) error {
	f := snapshotFile{EdgeLengths: s.Edges.Array(), Particles: make([]particleJSON, len(s.particles))}
	for i, p := range s.particles {
		f.Particles[i] = particleJSON{ID: s.ids[i], Species: p.Kind, Position: p.Pos.Array(), Radius: p.R}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// DecodeCSV reads rows with a header naming at least species, x, y and z;
// id and radius columns are optional. When edges is zero the edge lengths are
// taken from the largest coordinate on each axis.
func DecodeCSV(r io.Reader, edges geom.Vec3) (*Snapshot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(records) == 0 {
		return NewSnapshot(edges), nil
	}

	col := make(map[string]int)
	for i, h := range records[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, need := range []string{"species", "x", "y", "z"} {
		if _, ok := col[need]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformed, need)
		}
	}

	s := NewSnapshot(edges)
	var hi geom.Vec3
	for line, rec := range records[1:] {
		num := func(name string) (float64, error) {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return 0, nil
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				return 0, fmt.Errorf("%w: line %d: %s: %v", ErrMalformed, line+2, name, err)
			}
			return v, nil
		}
		var p Point
		if i := col["species"]; i < len(rec) {
			p.Kind = rec[i]
		}
		var vals [4]float64
		for k, name := range []string{"x", "y", "z", "radius"} {
			if vals[k], err = num(name); err != nil {
				return nil, err
			}
		}
		p.Pos = geom.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}
		p.R = vals[3]

		id := ""
		if i, ok := col["id"]; ok && i < len(rec) {
			id = rec[i]
		}
		s.Add(id, p)
		hi = geom.Vec3{X: math.Max(hi.X, p.Pos.X), Y: math.Max(hi.Y, p.Pos.Y), Z: math.Max(hi.Z, p.Pos.Z)}
	}
	if edges == (geom.Vec3{}) {
		s.Edges = hi
	}
	return s, nil
}

// LoadSnapshot reads a .json or .csv snapshot from path.
func LoadSnapshot(path string, edges geom.Vec3) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var s *Snapshot
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		s, err = DecodeCSV(f, edges)
	default:
		s, err = DecodeJSON(f)
		if err == nil && edges != (geom.Vec3{}) {
			s.Edges = edges
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func isBad(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
