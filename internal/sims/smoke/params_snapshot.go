package smoke

import "stable-fluids/internal/core"

func (s *Smoke) Parameters() core.ParameterSnapshot {
	params := s.cfg.Params
	stats := s.state.Stats()
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.StringParam("preset", "Preset", s.cfg.Preset),
				core.IntParam("w", "Width", s.cfg.Width),
				core.IntParam("h", "Height", s.cfg.Height),
				core.Int64Param("seed", "Seed", s.cfg.Seed),
			},
		},
		{
			Name: "Solver",
			Params: []core.Parameter{
				core.FloatParam("dt", "Time step", params.TimeStep),
				core.FloatParam("viscosity", "Viscosity", params.Viscosity),
				core.FloatParam("diffusion", "Diffusion", params.Diffusion),
				core.IntParam("iterations", "Iterations", params.Iterations),
				core.BoolParam("diffuse", "Diffusion pass", s.Diffusion()),
				core.BoolParam("project", "Projection pass", s.Projection()),
			},
		},
		{
			Name: "Emitter",
			Params: []core.Parameter{
				core.FloatParam("emit_density", "Emit density", params.EmitDensity),
				core.FloatParam("emit_speed", "Emit speed", params.EmitSpeed),
				core.FloatParam("emit_radius", "Emit radius", params.EmitRadius),
			},
		},
		{
			Name:    "Diagnostics",
			Summary: "read-only",
			Params: []core.Parameter{
				core.IntParam("steps", "Steps", s.state.Steps()),
				core.FloatParam("total_density", "Total density", stats.TotalDensity),
				core.FloatParam("max_speed", "Max speed", stats.MaxSpeed),
				core.FloatParam("max_divergence", "Max divergence", stats.MaxDivergence),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func (s *Smoke) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "dt", Label: "Time step", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, HasMin: true, Max: 2, HasMax: true},
		{Key: "viscosity", Label: "Viscosity", Type: core.ParamTypeFloat, Step: 0.00001, Min: 0, HasMin: true},
		{Key: "diffusion", Label: "Diffusion", Type: core.ParamTypeFloat, Step: 0.00001, Min: 0, HasMin: true},
		{Key: "iterations", Label: "Iterations", Type: core.ParamTypeInt, Step: 5, Min: 0, HasMin: true, Max: 200, HasMax: true},
		{Key: "emit_density", Label: "Emit density", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, HasMin: true},
		{Key: "emit_speed", Label: "Emit speed", Type: core.ParamTypeFloat, Step: 0.5},
		{Key: "emit_radius", Label: "Emit radius", Type: core.ParamTypeFloat, Step: 0.5, Min: 1, HasMin: true, Max: 32, HasMax: true},
	}
}

func (s *Smoke) SetIntParameter(key string, value int) bool {
	switch key {
	case "iterations":
		if value < 0 {
			return false
		}
		s.cfg.Params.Iterations = value
		s.state.Simulator().Iterations = value
		return true
	}
	return false
}

func (s *Smoke) SetFloatParameter(key string, value float64) bool {
	if value < 0 && key != "emit_speed" {
		return false
	}
	switch key {
	case "dt":
		s.cfg.Params.TimeStep = value
	case "viscosity":
		s.cfg.Params.Viscosity = value
		s.state.SetViscosity(value)
	case "diffusion":
		s.cfg.Params.Diffusion = value
		s.state.SetDiffusionRate(value)
	case "emit_density":
		s.cfg.Params.EmitDensity = value
	case "emit_speed":
		s.cfg.Params.EmitSpeed = value
	case "emit_radius":
		s.cfg.Params.EmitRadius = value
	default:
		return false
	}
	return true
}

func (s *Smoke) SetBoolParameter(key string, value bool) bool {
	switch key {
	case "diffuse":
		s.SetDiffusion(value)
	case "project":
		s.SetProjection(value)
	default:
		return false
	}
	return true
}
