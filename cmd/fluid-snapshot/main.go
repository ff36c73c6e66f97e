package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"stable-fluids/internal/app"
	"stable-fluids/internal/render"
	"stable-fluids/internal/sims/smoke"
)

func main() {
	steps := flag.Int("steps", 200, "number of ticks to simulate before exporting")
	preset := flag.String("preset", smoke.PresetPlume, fmt.Sprintf("scenario preset %v", smoke.Presets()))
	configPath := flag.String("config", "", "JSON scenario config file")
	outDir := flag.String("out", "out", "directory for the PNG exports")
	scale := flag.Int("scale", 4, "pixels per cell in the quiver image")
	stride := flag.Int("stride", 4, "cells between quiver arrows")
	var overrides app.Overrides
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	base, err := smoke.LoadFile(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	base.Preset = *preset
	cfg := smoke.Apply(base, overrides.ToMap())

	sim, err := smoke.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	for i := 0; i < *steps; i++ {
		sim.Step()
	}
	if err := sim.State().CheckFinite(); err != nil {
		log.Fatalf("after %d steps: %v", *steps, err)
	}

	size := sim.Size()
	densityPath := filepath.Join(*outDir, cfg.Preset+"_density.png")
	title := fmt.Sprintf("%s density, step %d", cfg.Preset, sim.Steps())
	if err := render.SaveHeatmapPNG(densityPath, title, sim.Density(), size.W, size.H); err != nil {
		log.Fatalf("write heatmap: %v", err)
	}
	quiverPath := filepath.Join(*outDir, cfg.Preset+"_velocity.png")
	opt := render.QuiverOptions{Scale: *scale, Stride: *stride}
	if err := render.SaveQuiverPNG(quiverPath, sim.Velocity(), sim.Density(), size.W, size.H, opt); err != nil {
		log.Fatalf("write quiver: %v", err)
	}

	stats := sim.Stats()
	fmt.Printf("Preset %s, %dx%d, %d steps (dt=%g, iterations=%d)\n",
		cfg.Preset, size.W, size.H, sim.Steps(), cfg.Params.TimeStep, cfg.Params.Iterations)
	fmt.Printf("  total_density=%.4f min=%.4f max=%.4f\n", stats.TotalDensity, stats.MinDensity, stats.MaxDensity)
	fmt.Printf("  kinetic_energy=%.4f max_speed=%.4f max_divergence=%.3e\n", stats.KineticEnergy, stats.MaxSpeed, stats.MaxDivergence)
	fmt.Printf("Wrote %s and %s\n", densityPath, quiverPath)
}
