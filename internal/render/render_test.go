package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/san-kum/partviz/internal/colorscale"
	"github.com/san-kum/partviz/internal/geom"
	"github.com/san-kum/partviz/internal/observer"
	"github.com/san-kum/partviz/internal/scene"
	"github.com/san-kum/partviz/internal/world"
)

func worldWidget(t *testing.T) *scene.Widget {
	t.Helper()
	w := world.NewSnapshot(geom.Vec3{X: 1, Y: 1, Z: 1})
	w.Add("", world.Point{Pos: geom.Vec3{X: 0.2, Y: 0.2, Z: 0.2}, R: 0.05, Kind: "A"})
	w.Add("", world.Point{Pos: geom.Vec3{X: 0.8, Y: 0.8, Z: 0.8}, R: 0.05, Kind: "B"})
	wd, err := scene.World(w, scene.WorldOptions{Width: 200, Height: 200, Grid: true}, colorscale.New(nil))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return wd
}

func TestHTML(t *testing.T) {
	wd := worldWidget(t)
	var buf bytes.Buffer
	if err := HTML(&buf, wd, DefaultAssets); err != nil {
		t.Fatalf("html failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`id="` + wd.ID + `"`,
		`"type":"Particles"`,
		"#a6cee3",
		"#1f78b4",
		"Elegans",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestPage(t *testing.T) {
	var buf bytes.Buffer
	if err := Page(&buf, worldWidget(t), "snapshot", DefaultAssets); err != nil {
		t.Fatalf("page failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<!DOCTYPE html>") || !strings.Contains(out, "<title>snapshot</title>") {
		t.Errorf("unexpected page: %.120s", out)
	}
	if strings.Contains(out, "&lt;div") {
		t.Error("widget body was escaped")
	}
}

func TestRenderFormats(t *testing.T) {
	wd := worldWidget(t)
	tests := []struct {
		format string
		want   string
	}{
		{FormatHTML, "<script"},
		{FormatPage, "<!DOCTYPE html>"},
		{FormatJSON, `"plots"`},
		{FormatSVG, "<circle"},
	}
	for _, tt := range tests {
		a, err := Render(wd, Options{Format: tt.format, Name: "w"})
		if err != nil {
			t.Errorf("%s: render failed: %v", tt.format, err)
			continue
		}
		if !bytes.Contains(a.Body, []byte(tt.want)) {
			t.Errorf("%s: body missing %q", tt.format, tt.want)
		}
		if a.Colors["A"] == "" {
			t.Errorf("%s: artifact missing colors", tt.format)
		}
	}

	if _, err := Render(wd, Options{Format: "gif"}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestSnapshotDrawsEveryParticle(t *testing.T) {
	var buf bytes.Buffer
	if err := Snapshot(&buf, worldWidget(t), 100, 100); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	out := buf.String()
	if n := strings.Count(out, "<circle"); n != 2 {
		t.Errorf("expected 2 circles, got %d", n)
	}
	if !strings.Contains(out, `fill="#1f78b4"`) {
		t.Error("species color missing from snapshot")
	}
}

func TestSnapshotLines(t *testing.T) {
	obs := &observer.Trajectories{Paths: [][]geom.Vec3{{{X: 0}, {X: 1, Y: 1}, {X: 2, Z: 1}}}}
	wd, err := scene.Trajectory(obs, scene.TrajectoryOptions{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Snapshot(&buf, wd, 0, 0); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if !strings.Contains(buf.String(), "<path") || !strings.Contains(buf.String(), `width="350"`) {
		t.Errorf("unexpected snapshot %s", buf.String())
	}
}

func chartData(t *testing.T) *scene.ChartData {
	t.Helper()
	obs := &observer.Numbers{Names: []string{"A", "B"}, Rows: [][]float64{{0, 1, 5}, {1, 2, 4}, {2, 3, 3}}}
	cd, err := scene.ResolveChart(obs, scene.ChartOptions{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return cd
}

func TestChart(t *testing.T) {
	cd := chartData(t)

	var png bytes.Buffer
	if err := Chart(&png, cd, 300, 200, FormatPNG); err != nil {
		t.Fatalf("png chart failed: %v", err)
	}
	if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
		t.Error("expected png signature")
	}

	var svg bytes.Buffer
	if err := Chart(&svg, cd, 0, 0, FormatSVG); err != nil {
		t.Fatalf("svg chart failed: %v", err)
	}
	if !strings.Contains(svg.String(), "<svg") {
		t.Error("expected svg document")
	}

	if err := Chart(&svg, cd, 0, 0, FormatHTML); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}

	a, err := ChartArtifact(cd, "counts", 0, 0, FormatSVG, nil)
	if err != nil {
		t.Fatalf("artifact failed: %v", err)
	}
	if a.Name != "counts" || a.ContentType() != "image/svg+xml" || !strings.HasPrefix(a.ID, "chart") {
		t.Errorf("unexpected artifact %+v", a)
	}
}

func TestFileSink(t *testing.T) {
	dir := t.TempDir()
	sink := FileSink{Dir: dir}
	a := Artifact{ID: "x", Name: "out", Kind: FormatPage, Body: []byte("<html></html>")}
	if err := sink.Display(context.Background(), a); err != nil {
		t.Fatalf("display failed: %v", err)
	}
	data, err := os.ReadFile(sink.Path(a))
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("unexpected content %q", data)
	}
	if !strings.HasSuffix(sink.Path(a), "out.html") {
		t.Errorf("unexpected path %s", sink.Path(a))
	}
}

func TestMultiSink(t *testing.T) {
	var a, b bytes.Buffer
	m := Multi{WriterSink{W: &a}, WriterSink{W: &b}}
	if err := m.Display(context.Background(), Artifact{Body: []byte("x")}); err != nil {
		t.Fatal(err)
	}
	if a.String() != "x" || b.String() != "x" {
		t.Errorf("expected both sinks written, got %q %q", a.String(), b.String())
	}
}

func TestGallery(t *testing.T) {
	g := NewGallery(GalleryConfig{Bind: "127.0.0.1", Port: 0}, log.New(&bytes.Buffer{}))
	a, err := Render(worldWidget(t), Options{Format: FormatSVG, Name: "world"})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Display(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	// same id replaces
	if err := g.Display(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	if len(g.List()) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(g.List()))
	}

	srv := httptest.NewServer(g.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/artifacts/" + a.ID)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/svg+xml" {
		t.Errorf("unexpected response %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	resp, err = http.Get(srv.URL + "/artifacts/missing")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/artifacts")
	if err != nil {
		t.Fatal(err)
	}
	var listed []Artifact
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if len(listed) != 1 || listed[0].Name != "world" {
		t.Errorf("unexpected listing %+v", listed)
	}

	rec := httptest.NewRecorder()
	g.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(rec.Body.String(), "/artifacts/"+a.ID) {
		t.Error("index does not link the artifact")
	}
}
