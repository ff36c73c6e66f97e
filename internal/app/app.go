//go:build ebiten

package app

import (
	"image/color"
	"log"
	"math"
	"time"

	"stable-fluids/internal/core"
	"stable-fluids/internal/render"
	"stable-fluids/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type view int

const (
	viewDensity view = iota
	viewVelocity
)

const (
	dragDensity = 2.0
	dragForce   = 5.0
)

// Game adapts a fluid scenario to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	palette []color.RGBA

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
	view     view

	dragging     bool
	lastX, lastY int
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale, hudWidth int, seed int64) *Game {
	scale = max(scale, 1)
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(sim, hudWidth),
		overlay: ui.NewOverlay(sim, scale),
		palette: render.DensityPalette(256),
		scale:   scale,
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.view = (g.view + 1) % 2
	}
	if toggler, ok := g.sim.(core.StageToggler); ok {
		if inpututil.IsKeyJustPressed(ebiten.KeyD) {
			toggler.SetDiffusion(!toggler.Diffusion())
			log.Printf("diffusion pass: %v", toggler.Diffusion())
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyP) {
			toggler.SetProjection(!toggler.Projection())
			log.Printf("projection pass: %v", toggler.Projection())
		}
	}

	g.overlay.Update()
	g.hud.Update(g.viewWidth())
	g.handleDrag()

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

// handleDrag injects density along the cursor path with velocity matching
// the drag direction.
func (g *Game) handleDrag() {
	injector, ok := g.sim.(core.Injector)
	if !ok {
		return
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = false
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < 0 || mx >= g.viewWidth() {
		g.dragging = false
		return
	}
	x, y := g.sim.Size().ClampInterior(mx/g.scale, my/g.scale)
	if !g.dragging {
		g.dragging = true
		g.lastX, g.lastY = x, y
	}
	dx, dy := float64(x-g.lastX), float64(y-g.lastY)
	if err := injector.Inject(x, y, dragDensity, dx*dragForce, dy*dragForce); err != nil {
		log.Printf("inject at (%d,%d): %v", x, y, err)
	}
	g.lastX, g.lastY = x, y
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	buf := g.painter.Buffer()
	switch g.view {
	case viewVelocity:
		vel := g.sim.Velocity()
		render.FillVelocityRGBA(buf, vel, render.PeakSpeed(vel))
	default:
		render.FillDensityRGBA(buf, g.sim.Density(), g.palette, densityCeiling(g.sim.Density()))
	}
	g.painter.Blit(screen, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return g.viewWidth() + g.hud.Width(), s.H * g.scale
}

func (g *Game) viewWidth() int { return g.sim.Size().W * g.scale }

// densityCeiling keeps faint smoke visible while capping bright spots at 1.
func densityCeiling(density []float64) float64 {
	var peak float64
	for _, d := range density {
		peak = math.Max(peak, d)
	}
	return math.Min(math.Max(peak, 0.05), 1)
}
