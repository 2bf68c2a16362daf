package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/partviz/internal/scene"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 350 || cfg.Height != 350 {
		t.Errorf("expected 350x350, got %dx%d", cfg.Width, cfg.Height)
	}
	if !cfg.Grid {
		t.Error("grid should default on")
	}
	if cfg.MaxCount != 1000 {
		t.Errorf("expected max count 1000, got %d", cfg.MaxCount)
	}
	if cfg.GetCamera() != scene.DefaultCamera {
		t.Errorf("expected default camera, got %+v", cfg.GetCamera())
	}
}

func TestGetPreset(t *testing.T) {
	tests := []struct {
		kind     string
		width    int
		grid     bool
		maxCount int
	}{
		{KindWorld, 350, true, 1000},
		{KindMovie, 500, false, 1000},
		{KindTrajectory, 350, true, 10},
		{KindChart, 600, false, 0},
	}

	for _, tt := range tests {
		cfg := GetPreset(tt.kind)
		if cfg == nil {
			t.Fatalf("%s: expected preset, got nil", tt.kind)
		}
		if cfg.Width != tt.width || cfg.Grid != tt.grid || cfg.MaxCount != tt.maxCount {
			t.Errorf("%s: unexpected preset %+v", tt.kind, cfg)
		}
	}
}

func TestGetPreset_Copy(t *testing.T) {
	cfg := GetPreset(KindWorld)
	cfg.Width = 1
	if GetPreset(KindWorld).Width != 350 {
		t.Error("preset was modified through a returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent kind")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 5 {
		t.Fatalf("expected 5 presets, got %v", presets)
	}
	if presets[0] != KindChart {
		t.Errorf("expected sorted names, got %v", presets)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viz.yaml")
	data := `width: 500
max_count: 20
seed: 7
species: [A, B]
colors:
  A: "#e31a1c"
camera:
  position: [1, 2, 3]
debug:
  - type: box
    x: 0.5
    options: {width: 1}
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Width != 500 || cfg.Height != 350 {
		t.Errorf("expected 500x350, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Seed == nil || *cfg.Seed != 7 {
		t.Errorf("expected seed 7, got %v", cfg.Seed)
	}
	if len(cfg.Species) != 2 || cfg.Colors["A"] != "#e31a1c" {
		t.Errorf("unexpected species/colors %v %v", cfg.Species, cfg.Colors)
	}
	if cfg.Camera.Position != [3]float64{1, 2, 3} {
		t.Errorf("unexpected camera %v", cfg.Camera.Position)
	}

	opts := cfg.WorldOptions()
	if len(opts.Debug) != 1 || opts.Debug[0].Type != "box" || opts.Debug[0].Options["width"] != 1 {
		t.Errorf("unexpected debug objects %+v", opts.Debug)
	}
	if opts.Extract.MaxCount != 20 || len(opts.Extract.Species) != 2 || opts.Extract.Source == nil {
		t.Errorf("unexpected world options %+v", opts.Extract)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viz.toml")
	data := `width = 640
height = 480
grid = false
radius = 0.1

[colors]
A = "#33a02c"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Width != 640 || cfg.Height != 480 || cfg.Grid {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Radius != 0.1 || cfg.Colors["A"] != "#33a02c" {
		t.Errorf("unexpected radius/colors %v %v", cfg.Radius, cfg.Colors)
	}
	if cfg.Seed != nil {
		t.Error("seed should stay unset")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	seed := uint64(3)
	for _, name := range []string{"c.yaml", "c.toml"} {
		cfg := GetPreset(KindTrajectory)
		cfg.Seed = &seed
		path := filepath.Join(dir, name)
		if err := Save(path, cfg); err != nil {
			t.Fatalf("%s: save failed: %v", name, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("%s: load failed: %v", name, err)
		}
		if got.MaxCount != 10 || got.Seed == nil || *got.Seed != 3 {
			t.Errorf("%s: unexpected config %+v", name, got)
		}
	}
}

func TestUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viz.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
	if err := Save(path, DefaultConfig()); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestColors(t *testing.T) {
	dir := t.TempDir()
	colors := map[string]string{"A": "#a6cee3", "B": "#1f78b4"}
	for _, name := range []string{"colors.yaml", "colors.toml"} {
		path := filepath.Join(dir, name)
		if err := SaveColors(path, colors); err != nil {
			t.Fatalf("%s: save failed: %v", name, err)
		}
		got, err := LoadColors(path)
		if err != nil {
			t.Fatalf("%s: load failed: %v", name, err)
		}
		if len(got) != 2 || got["B"] != "#1f78b4" {
			t.Errorf("%s: unexpected colors %v", name, got)
		}
	}
}

func TestVolumeOptionsDefaultLength(t *testing.T) {
	if n := DefaultConfig().VolumeOptions().Length; n != DefaultLength {
		t.Errorf("expected length %d, got %d", DefaultLength, n)
	}
}

func TestMovieOptionsKeepAllParticles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCount = 10
	if n := cfg.WorldOptions().Extract.MaxCount; n != 10 {
		t.Errorf("expected world max count 10, got %d", n)
	}
	if n := cfg.MovieOptions().Extract.MaxCount; n != 0 {
		t.Errorf("expected movie to keep all particles, got max count %d", n)
	}
}
