package observer

import (
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/partviz/internal/geom"
	"github.com/san-kum/partviz/internal/sample"
)

func numbers() *Numbers {
	return &Numbers{
		Names: []string{"C", "A", "B"},
		Rows: [][]float64{
			{0, 10, 0, 5},
			{1, 8, 2, 5},
			{2, 6, 4, 5},
		},
	}
}

func TestSelectDefault(t *testing.T) {
	sel, err := Select(numbers(), "", nil)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if !sel.ByTime || sel.X.Column != 0 {
		t.Errorf("expected time on x, got %+v", sel.X)
	}
	want := []Series{{"A", 2}, {"B", 3}, {"C", 1}}
	if len(sel.Y) != len(want) {
		t.Fatalf("expected %d series, got %d", len(want), len(sel.Y))
	}
	for i := range want {
		if sel.Y[i] != want[i] {
			t.Errorf("series %d: expected %+v, got %+v", i, want[i], sel.Y[i])
		}
	}
}

func TestSelectNamed(t *testing.T) {
	sel, err := Select(numbers(), "A", []string{"C", "nope", "B"})
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if sel.ByTime || sel.X.Column != 2 {
		t.Errorf("expected A (column 2) on x, got %+v", sel.X)
	}
	if len(sel.Y) != 2 || sel.Y[0].Name != "C" || sel.Y[1].Name != "B" {
		t.Errorf("unexpected y series %+v", sel.Y)
	}
}

func TestSelectUnknownX(t *testing.T) {
	_, err := Select(numbers(), "Z", nil)
	if !errors.Is(err, ErrUnknownSeries) {
		t.Fatalf("expected ErrUnknownSeries, got %v", err)
	}
	var se *SeriesError
	if !errors.As(err, &se) || se.Name != "Z" {
		t.Errorf("expected SeriesError for Z, got %v", err)
	}
}

func TestColumn(t *testing.T) {
	got := Column([][]float64{{1, 2}, {3}}, 1)
	if got[0] != 2 || got[1] != 0 {
		t.Errorf("unexpected column %v", got)
	}
}

func TestDecodeNumbers(t *testing.T) {
	in := "t,A,B\n0,1,2\n0.5,3,4\nbad,9,9\n1.0,5\n"
	n, err := DecodeNumbers(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(n.Targets()) != 2 || n.Targets()[1] != "B" {
		t.Errorf("unexpected targets %v", n.Targets())
	}
	if len(n.Data()) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(n.Data()))
	}
	if n.Data()[2][2] != 0 {
		t.Errorf("short row should pad with zero, got %v", n.Data()[2])
	}
}

func TestDecodeTrajectories(t *testing.T) {
	in := `trajectory,t,x,y,z
1,0.1,1,1,1
2,0,5,5,5
1,0,0,0,0
`
	tr, err := DecodeTrajectories(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(tr.Data()) != 2 {
		t.Fatalf("expected 2 trajectories, got %d", len(tr.Data()))
	}
	if tr.Data()[0][0] != (geom.Vec3{}) {
		t.Errorf("trajectory not sorted by time: %v", tr.Data()[0])
	}
	if len(tr.Points()) != 3 {
		t.Errorf("expected 3 points, got %d", len(tr.Points()))
	}

	if _, err := DecodeTrajectories(strings.NewReader("1,0,0,0,0\n1,x,0,0,0\n")); err == nil {
		t.Error("expected error for invalid number")
	}
}

func TestSampleTrajectories(t *testing.T) {
	tr := &Trajectories{Paths: make([][]geom.Vec3, 20)}
	for i := range tr.Paths {
		tr.Paths[i] = []geom.Vec3{{X: float64(i)}}
	}
	got := SampleTrajectories(tr, 10, sample.Unseeded())
	if len(got) != 10 {
		t.Errorf("expected 10 trajectories, got %d", len(got))
	}
	if got := SampleTrajectories(tr, 0, nil); len(got) != 20 {
		t.Errorf("expected all 20 without a limit, got %d", len(got))
	}
}
