package app

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"stable-fluids/internal/core"
	"stable-fluids/internal/sims/smoke"
)

// ErrBadOverride is returned for -set values that are not key=value pairs.
var ErrBadOverride = errors.New("override must be key=value")

// Config represents the command-line parameters shared by the fluid tools.
type Config struct {
	Sim        string
	Scale      int
	TPS        int
	Seed       int64
	ConfigPath string
	HUDWidth   int
	Overrides  Overrides
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: smoke.PresetPlume, Scale: 4, TPS: 30, HUDWidth: 260}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, fmt.Sprintf("scenario to run %v", smoke.Presets()))
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset (0 keeps the configured seed)")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "JSON scenario config file")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel in pixels (0 hides it)")
	fs.Var(&c.Overrides, "set", "parameter override in key=value form (repeatable)")
}

// Overrides collects repeated -set key=value flags.
type Overrides []string

func (o *Overrides) String() string {
	return strings.Join(*o, ",")
}

// Set validates and appends one key=value pair.
func (o *Overrides) Set(value string) error {
	key, _, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("%q: %w", value, ErrBadOverride)
	}
	*o = append(*o, value)
	return nil
}

// ToMap returns the overrides keyed by name. Later values win.
func (o Overrides) ToMap() map[string]string {
	m := make(map[string]string, len(o))
	for _, kv := range o {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		m[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return m
}

func (c *Config) settings() map[string]string {
	m := c.Overrides.ToMap()
	if c.Seed != 0 {
		m["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	return m
}

// NewSim builds the configured scenario. A config file, when given, is the
// base that overrides are applied on top of.
func (c *Config) NewSim() (core.Sim, error) {
	if c.ConfigPath == "" {
		return core.New(c.Sim, c.settings())
	}
	base, err := smoke.LoadFile(c.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := smoke.Apply(base, c.settings())
	if c.Sim != "" {
		cfg.Preset = c.Sim
	}
	sim, err := smoke.New(cfg)
	if err != nil {
		return nil, err
	}
	return sim, nil
}
