package config

import "sort"

// Plot kinds with a preset.
const (
	KindWorld      = "world"
	KindMovie      = "movie"
	KindTrajectory = "trajectory"
	KindVolume     = "volume"
	KindChart      = "chart"
)

var Presets = map[string]*Config{
	KindWorld: {
		Width: 350, Height: 350, Grid: true, MaxCount: 1000, Format: DefaultFormat,
	},
	KindMovie: {
		Width: 500, Height: 500, Grid: false, MaxCount: 1000, Format: DefaultFormat,
	},
	KindTrajectory: {
		Width: 350, Height: 350, Grid: true, MaxCount: 10, Format: DefaultFormat,
	},
	KindVolume: {
		Width: 350, Height: 350, Grid: true, Length: DefaultLength, Format: DefaultFormat,
	},
	KindChart: {
		Width: 600, Height: 400, Format: DefaultFormat,
	},
}

// GetPreset returns a fresh copy of the preset for kind with the default
// camera, or nil when kind has none.
func GetPreset(kind string) *Config {
	p, ok := Presets[kind]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Camera = DefaultConfig().Camera
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
