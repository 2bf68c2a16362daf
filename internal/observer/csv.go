package observer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/partviz/internal/geom"
)

// Numbers is an in-memory NumberObserver.
type Numbers struct {
	Names []string
	Rows  [][]float64
}

func (n *Numbers) Data() [][]float64 { return n.Rows }
func (n *Numbers) Targets() []string { return n.Names }

// Trajectories is an in-memory TrajectoryObserver.
type Trajectories struct {
	Paths [][]geom.Vec3
}

func (t *Trajectories) Data() [][]geom.Vec3 { return t.Paths }

// Points flattens every trajectory.
func (t *Trajectories) Points() []geom.Vec3 {
	var pts []geom.Vec3
	for _, p := range t.Paths {
		pts = append(pts, p...)
	}
	return pts
}

func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

// DecodeNumbers reads a CSV whose header is "t,<target>,...". Rows whose time
// cannot be parsed are skipped; unparsable values read as zero.
func DecodeNumbers(r io.Reader) (*Numbers, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Numbers{}, nil
	}

	n := &Numbers{Names: make([]string, 0, len(records[0]))}
	for _, h := range records[0][1:] {
		n.Names = append(n.Names, strings.TrimSpace(h))
	}
	width := len(records[0])

	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			continue
		}
		row := make([]float64, width)
		row[0] = t
		for j := 1; j < len(rec) && j < width; j++ {
			if v, err := strconv.ParseFloat(strings.TrimSpace(rec[j]), 64); err == nil {
				row[j] = v
			}
		}
		n.Rows = append(n.Rows, row)
	}
	return n, nil
}

// DecodeTrajectories reads rows of "trajectory,t,x,y,z". Rows are grouped by
// trajectory key in first-seen order and sorted by t within a trajectory.
func DecodeTrajectories(r io.Reader) (*Trajectories, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, err
	}

	type sampleAt struct {
		t float64
		p geom.Vec3
	}
	order := make([]string, 0)
	groups := make(map[string][]sampleAt)

	for i, rec := range records {
		if len(rec) < 5 {
			continue
		}
		var v [4]float64
		ok := true
		for j := range v {
			f, err := strconv.ParseFloat(strings.TrimSpace(rec[j+1]), 64)
			if err != nil {
				ok = false
				break
			}
			v[j] = f
		}
		if !ok {
			if i == 0 {
				continue // header
			}
			return nil, fmt.Errorf("observer: trajectory line %d: invalid number", i+1)
		}
		key := rec[0]
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], sampleAt{t: v[0], p: geom.Vec3{X: v[1], Y: v[2], Z: v[3]}})
	}

	tr := &Trajectories{Paths: make([][]geom.Vec3, 0, len(order))}
	for _, key := range order {
		g := groups[key]
		sort.SliceStable(g, func(a, b int) bool { return g[a].t < g[b].t })
		path := make([]geom.Vec3, len(g))
		for i, s := range g {
			path[i] = s.p
		}
		tr.Paths = append(tr.Paths, path)
	}
	return tr, nil
}

// LoadNumbers reads a number observer CSV file.
func LoadNumbers(path string) (*Numbers, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeNumbers(f)
}

// LoadTrajectories reads a trajectory CSV file.
func LoadTrajectories(path string) (*Trajectories, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeTrajectories(f)
}
