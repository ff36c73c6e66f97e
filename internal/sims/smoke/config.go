package smoke

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Params holds the solver and emitter tunables of a smoke scenario.
type Params struct {
	TimeStep   float64 `json:"dt"`
	Viscosity  float64 `json:"viscosity"`
	Diffusion  float64 `json:"diffusion"`
	Iterations int     `json:"iterations"`
	Diffuse    bool    `json:"diffuse"`
	Project    bool    `json:"project"`

	EmitDensity float64 `json:"emit_density"`
	EmitSpeed   float64 `json:"emit_speed"`
	EmitRadius  float64 `json:"emit_radius"`
}

// Config controls the grid size, seed and preset of a smoke scenario.
type Config struct {
	Width  int    `json:"w"`
	Height int    `json:"h"`
	Seed   int64  `json:"seed"`
	Preset string `json:"preset"`

	Params Params `json:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  160,
		Height: 120,
		Seed:   1337,
		Preset: PresetPlume,
		Params: Params{
			TimeStep:    0.1,
			Viscosity:   1e-7,
			Diffusion:   1e-7,
			Iterations:  20,
			Diffuse:     true,
			Project:     true,
			EmitDensity: 4,
			EmitSpeed:   6,
			EmitRadius:  4,
		},
	}
}

// LoadFile reads a JSON config on top of the defaults. A missing file yields
// the defaults.
func LoadFile(path string) (Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&c); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	return c.sanitize(), nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return Apply(DefaultConfig(), cfg)
}

// Apply overlays string key/value pairs on base. Invalid values are ignored.
func Apply(base Config, cfg map[string]string) Config {
	c := base
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 3 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 3 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["preset"]; ok {
		if _, known := presets[v]; known {
			c.Preset = v
		}
	}
	if v, ok := cfg["dt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.TimeStep = parsed
		}
	}
	if v, ok := cfg["viscosity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Viscosity = parsed
		}
	}
	if v, ok := cfg["diffusion"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Diffusion = parsed
		}
	}
	if v, ok := cfg["iterations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.Iterations = parsed
		}
	}
	if v, ok := cfg["diffuse"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.Diffuse = parsed
		}
	}
	if v, ok := cfg["project"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.Project = parsed
		}
	}
	if v, ok := cfg["emit_density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.EmitDensity = parsed
		}
	}
	if v, ok := cfg["emit_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.EmitSpeed = parsed
		}
	}
	if v, ok := cfg["emit_radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.EmitRadius = parsed
		}
	}
	return c
}

// sanitize restores defaults for values a JSON file set out of range.
func (c Config) sanitize() Config {
	d := DefaultConfig()
	if c.Width < 3 {
		c.Width = d.Width
	}
	if c.Height < 3 {
		c.Height = d.Height
	}
	if _, ok := presets[c.Preset]; !ok {
		c.Preset = d.Preset
	}
	if c.Params.TimeStep < 0 {
		c.Params.TimeStep = d.Params.TimeStep
	}
	if c.Params.Viscosity < 0 {
		c.Params.Viscosity = d.Params.Viscosity
	}
	if c.Params.Diffusion < 0 {
		c.Params.Diffusion = d.Params.Diffusion
	}
	if c.Params.Iterations < 0 {
		c.Params.Iterations = d.Params.Iterations
	}
	if c.Params.EmitRadius < 0 {
		c.Params.EmitRadius = d.Params.EmitRadius
	}
	return c
}
