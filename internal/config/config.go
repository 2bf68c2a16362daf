package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/partviz/internal/geom"
	"github.com/san-kum/partviz/internal/sample"
	"github.com/san-kum/partviz/internal/scene"
	"github.com/san-kum/partviz/internal/world"
)

const (
	DefaultWidth    = 350
	DefaultHeight   = 350
	DefaultMaxCount = 1000
	DefaultLength   = 256
	DefaultFormat   = "page"
)

// ErrUnknownFormat is returned for config files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("config: unknown file format")

type Config struct {
	Width     int               `yaml:"width" toml:"width"`
	Height    int               `yaml:"height" toml:"height"`
	Grid      bool              `yaml:"grid" toml:"grid"`
	Wireframe bool              `yaml:"wireframe" toml:"wireframe"`
	MaxCount  int               `yaml:"max_count" toml:"max_count"`
	Radius    float64           `yaml:"radius" toml:"radius"`
	Seed      *uint64           `yaml:"seed,omitempty" toml:"seed,omitempty"`
	Length    int               `yaml:"length,omitempty" toml:"length,omitempty"`
	Format    string            `yaml:"format" toml:"format"`
	Camera    CameraConfig      `yaml:"camera" toml:"camera"`
	Species   []string          `yaml:"species,omitempty" toml:"species,omitempty"`
	Colors    map[string]string `yaml:"colors,omitempty" toml:"colors,omitempty"`

	// Debug shapes are drawn with world snapshots.
	Debug []scene.DebugObject `yaml:"debug,omitempty" toml:"debug,omitempty"`
}

type CameraConfig struct {
	Position [3]float64 `yaml:"position" toml:"position"`
	Rotation [3]float64 `yaml:"rotation" toml:"rotation"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Grid:     true,
		MaxCount: DefaultMaxCount,
		Format:   DefaultFormat,
		Camera: CameraConfig{
			Position: scene.DefaultCamera.Position.Array(),
			Rotation: scene.DefaultCamera.Rotation.Array(),
		},
	}
}

// Load reads path on top of DefaultConfig.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Decode(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode reads path into cfg, keeping fields the file does not set. The
// format follows the extension: .yaml, .yml or .toml.
func Decode(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return unmarshal(path, data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := marshal(path, cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadColors reads a persisted color mapping.
func LoadColors(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	colors := make(map[string]string)
	if err := unmarshal(path, data, &colors); err != nil {
		return nil, err
	}
	return colors, nil
}

// SaveColors writes a color mapping for later runs.
func SaveColors(path string, colors map[string]string) error {
	if colors == nil {
		colors = map[string]string{}
	}
	data, err := marshal(path, colors)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func unmarshal(path string, data []byte, v any) error {
	switch ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("config: %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), v); err != nil {
			return fmt.Errorf("config: %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return nil
}

func marshal(path string, v any) ([]byte, error) {
	switch ext(path) {
	case ".yaml", ".yml":
		return yaml.Marshal(v)
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

func ext(path string) string { return strings.ToLower(filepath.Ext(path)) }

// Source returns the sampler for subsampling, seeded when Seed is set.
func (c *Config) Source() *sample.Source {
	return sample.New(c.Seed)
}

func (c *Config) GetCamera() scene.Camera {
	return scene.Camera{
		Position: geom.FromArray(c.Camera.Position),
		Rotation: geom.FromArray(c.Camera.Rotation),
	}
}

func (c *Config) WorldOptions() scene.WorldOptions {
	return scene.WorldOptions{
		Width:     c.Width,
		Height:    c.Height,
		Grid:      c.Grid,
		Wireframe: c.Wireframe,
		Camera:    c.GetCamera(),
		Debug:     c.Debug,
		Extract: world.Options{
			Radius:   c.Radius,
			Species:  c.Species,
			MaxCount: c.MaxCount,
			Source:   c.Source(),
		},
	}
}

// MovieOptions keeps every particle of every frame; max_count only applies
// to single snapshots.
func (c *Config) MovieOptions() scene.MovieOptions {
	extract := c.WorldOptions().Extract
	extract.MaxCount = 0
	return scene.MovieOptions{
		Width:   c.Width,
		Height:  c.Height,
		Grid:    c.Grid,
		Extract: extract,
	}
}

func (c *Config) TrajectoryOptions() scene.TrajectoryOptions {
	return scene.TrajectoryOptions{
		Width:     c.Width,
		Height:    c.Height,
		Grid:      c.Grid,
		Wireframe: c.Wireframe,
		Camera:    c.GetCamera(),
		MaxCount:  c.MaxCount,
		Source:    c.Source(),
	}
}

func (c *Config) VolumeOptions() scene.VolumeOptions {
	length := c.Length
	if length <= 0 {
		length = DefaultLength
	}
	return scene.VolumeOptions{
		Length: length,
		Grid:   c.Grid,
		Camera: c.GetCamera(),
	}
}

func (c *Config) ChartOptions() scene.ChartOptions {
	return scene.ChartOptions{
		Width:  c.Width,
		Height: c.Height,
	}
}
