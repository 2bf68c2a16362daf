// Package observer reads and selects recorded time series and particle
// trajectories.
package observer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/partviz/internal/geom"
	"github.com/san-kum/partviz/internal/sample"
)

// ErrUnknownSeries indicates a series name that is not among the targets.
var ErrUnknownSeries = errors.New("observer: unknown series")

// SeriesError reports which name was not found.
type SeriesError struct {
	Name string
	Axis string
}

func (e *SeriesError) Error() string {
	return fmt.Sprintf("observer: [%s] given as '%s' was not found", e.Name, e.Axis)
}

func (e *SeriesError) Unwrap() error { return ErrUnknownSeries }

// NumberObserver records named scalar series. Each row of Data is a sample
// whose column 0 is time and column i+1 is Targets()[i].
type NumberObserver interface {
	Data() [][]float64
	Targets() []string
}

// TrajectoryObserver records one position sequence per tracked particle.
type TrajectoryObserver interface {
	Data() [][]geom.Vec3
}

// Series is a target selected for plotting.
type Series struct {
	Name   string
	Column int
}

// Selection resolves the x column and y series of a NumberObserver.
type Selection struct {
	X      Series
	Y      []Series
	ByTime bool
}

// SeriesIndex returns the data column of name.
func SeriesIndex(targets []string, name string) (int, bool) {
	for i, t := range targets {
		if t == name {
			return i + 1, true
		}
	}
	return 0, false
}

// Select picks the x column (time when x is empty) and the y series. With no
// y names every target is used, sorted by name; otherwise names keep the given
// order and unknown ones are dropped.
func Select(obs NumberObserver, x string, y []string) (Selection, error) {
	targets := obs.Targets()
	sel := Selection{X: Series{Name: "t", Column: 0}, ByTime: true}
	if x != "" {
		col, ok := SeriesIndex(targets, x)
		if !ok {
			return Selection{}, &SeriesError{Name: x, Axis: "x"}
		}
		sel.X = Series{Name: x, Column: col}
		sel.ByTime = false
	}

	if len(y) == 0 {
		for i, t := range targets {
			sel.Y = append(sel.Y, Series{Name: t, Column: i + 1})
		}
		sort.SliceStable(sel.Y, func(i, j int) bool { return sel.Y[i].Name < sel.Y[j].Name })
		return sel, nil
	}
	for _, name := range y {
		if col, ok := SeriesIndex(targets, name); ok {
			sel.Y = append(sel.Y, Series{Name: name, Column: col})
		}
	}
	return sel, nil
}

// Column extracts column col of data. Short rows contribute zero.
func Column(data [][]float64, col int) []float64 {
	out := make([]float64, len(data))
	for i, row := range data {
		if col < len(row) {
			out[i] = row[col]
		}
	}
	return out
}

// SampleTrajectories keeps at most limit trajectories, drawn uniformly
// without replacement. A limit of 0 keeps all.
func SampleTrajectories(obs TrajectoryObserver, limit int, src *sample.Source) [][]geom.Vec3 {
	return sample.Pick(src, obs.Data(), limit)
}
