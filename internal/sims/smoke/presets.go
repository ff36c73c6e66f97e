package smoke

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"stable-fluids/pkg/fluid"
)

// Preset names.
const (
	PresetPlume  = "plume"
	PresetJets   = "jets"
	PresetVortex = "vortex"
	PresetDrop   = "drop"
	PresetPuffs  = "puffs"
)

// preset seeds the grid on reset and optionally emits every step.
type preset struct {
	seed func(*Smoke)
	emit func(*Smoke)
}

var presets = map[string]preset{
	PresetPlume:  {emit: emitPlume},
	PresetJets:   {emit: emitJets},
	PresetVortex: {seed: seedVortex},
	PresetDrop:   {seed: seedDrop},
	PresetPuffs:  {seed: seedPuffs, emit: emitPuffs},
}

// Presets lists the known preset names.
func Presets() []string {
	return []string{PresetPlume, PresetJets, PresetVortex, PresetDrop, PresetPuffs}
}

func (s *Smoke) radius() float64 {
	r := s.cfg.Params.EmitRadius
	limit := float64(min(s.cfg.Width, s.cfg.Height)-2) / 4
	if r > limit {
		r = limit
	}
	return math.Max(r, 1)
}

// emitPlume pushes density upward from the bottom centre.
func emitPlume(s *Smoke) {
	p := s.cfg.Params
	r := s.radius()
	cx := float64(s.cfg.Width-1) / 2
	cy := float64(s.cfg.Height-2) - r
	s.splat(cx, cy, r, p.EmitDensity, mgl64.Vec2{0, -p.EmitSpeed})
}

// emitJets fires two opposing jets slightly offset so they shear past each
// other.
func emitJets(s *Smoke) {
	p := s.cfg.Params
	r := s.radius()
	mid := float64(s.cfg.Height-1) / 2
	s.splat(1+r, mid-r/2, r, p.EmitDensity, mgl64.Vec2{p.EmitSpeed, 0})
	s.splat(float64(s.cfg.Width-2)-r, mid+r/2, r, p.EmitDensity, mgl64.Vec2{-p.EmitSpeed, 0})
}

// seedVortex sets up a solid-body rotation with a dense core.
func seedVortex(s *Smoke) {
	p := s.cfg.Params
	cx := float64(s.cfg.Width-1) / 2
	cy := float64(s.cfg.Height-1) / 2
	reach := float64(min(s.cfg.Width, s.cfg.Height)-2) / 2.5
	vel, dens := s.state.Velocity(), s.state.Density()
	for y := 1; y <= s.cfg.Height-2; y++ {
		for x := 1; x <= s.cfg.Width-2; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			d := math.Hypot(dx, dy)
			if d > reach {
				continue
			}
			falloff := 1 - d/reach
			vel.Set(x, y, mgl64.Vec2{-dy, dx}.Mul(p.EmitSpeed*falloff/reach))
			if d < reach/2 {
				dens.Set(x, y, p.EmitDensity*(1-2*d/reach))
			}
		}
	}
	fluid.LimitVector(vel, true)
	fluid.LimitScalar(dens)
}

// seedDrop releases a single dense blob falling from the upper centre.
func seedDrop(s *Smoke) {
	p := s.cfg.Params
	r := s.radius() * 1.5
	cx := float64(s.cfg.Width-1) / 2
	cy := float64(s.cfg.Height-1) / 4
	s.splat(cx, cy, r, p.EmitDensity*4, mgl64.Vec2{0, p.EmitSpeed})
}

// seedPuffs scatters random splats using the scenario RNG.
func seedPuffs(s *Smoke) {
	n := s.rng.IntRange(6, 12)
	for i := 0; i < n; i++ {
		s.randomPuff(1)
	}
}

// emitPuffs adds a weaker random puff every few ticks.
func emitPuffs(s *Smoke) {
	if s.tick%12 == 0 {
		s.randomPuff(0.5)
	}
}

func (s *Smoke) randomPuff(strength float64) {
	p := s.cfg.Params
	r := s.radius()
	x := s.rng.Range(1+r, float64(s.cfg.Width-2)-r)
	y := s.rng.Range(1+r, float64(s.cfg.Height-2)-r)
	angle := s.rng.Range(0, 2*math.Pi)
	speed := p.EmitSpeed * s.rng.Range(0.5, 1)
	v := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}.Mul(speed * strength)
	s.splat(x, y, r, p.EmitDensity*strength*s.rng.Range(0.5, 1.5), v)
}
