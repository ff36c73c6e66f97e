package app

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"stable-fluids/internal/sims/smoke"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-sim", "vortex", "-scale", "2", "-tps", "15", "-seed", "9", "-set", "w=40", "-set", "dt=0.05"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Sim != "vortex" || cfg.Scale != 2 || cfg.TPS != 15 || cfg.Seed != 9 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	m := cfg.Overrides.ToMap()
	if m["w"] != "40" || m["dt"] != "0.05" {
		t.Fatalf("unexpected overrides %v", m)
	}
}

func TestOverridesRejectMissingValue(t *testing.T) {
	var o Overrides
	if err := o.Set("iterations"); !errors.Is(err, ErrBadOverride) {
		t.Fatalf("expected ErrBadOverride, got %v", err)
	}
	if err := o.Set("=3"); !errors.Is(err, ErrBadOverride) {
		t.Fatalf("expected ErrBadOverride for empty key, got %v", err)
	}
	if len(o) != 0 {
		t.Fatalf("rejected values were kept: %v", o)
	}
}

func TestOverridesLaterValueWins(t *testing.T) {
	o := Overrides{"w=10", " w = 12 "}
	if got := o.ToMap()["w"]; got != "12" {
		t.Fatalf("expected 12, got %q", got)
	}
}

func TestNewSimAppliesOverrides(t *testing.T) {
	cfg := NewConfig()
	cfg.Sim = smoke.PresetJets
	cfg.Overrides = Overrides{"w=40", "h=30"}
	sim, err := cfg.NewSim()
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	if sim.Name() != smoke.PresetJets {
		t.Fatalf("expected %s, got %s", smoke.PresetJets, sim.Name())
	}
	if s := sim.Size(); s.W != 40 || s.H != 30 {
		t.Fatalf("unexpected size %+v", s)
	}
}

func TestNewSimUsesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fluid.json")
	data := `{"w": 24, "h": 20, "params": {"dt": 0.2, "iterations": 4}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := NewConfig()
	cfg.Sim = smoke.PresetDrop
	cfg.ConfigPath = path
	cfg.Overrides = Overrides{"h=22"}
	sim, err := cfg.NewSim()
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	sm := sim.(*smoke.Smoke)
	got := sm.Config()
	if got.Width != 24 || got.Height != 22 {
		t.Fatalf("expected 24x22, got %dx%d", got.Width, got.Height)
	}
	if got.Params.TimeStep != 0.2 || got.Params.Iterations != 4 {
		t.Fatalf("file params not applied: %+v", got.Params)
	}
	if got.Preset != smoke.PresetDrop {
		t.Fatalf("expected preset %s, got %s", smoke.PresetDrop, got.Preset)
	}
}

func TestNewSimUnknownName(t *testing.T) {
	cfg := NewConfig()
	cfg.Sim = "honey"
	if _, err := cfg.NewSim(); err == nil {
		t.Fatal("expected error for unknown sim")
	}
}
