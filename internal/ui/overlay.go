//go:build ebiten

package ui

import (
	"math"

	"stable-fluids/internal/core"
	"stable-fluids/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type divergenceProvider interface {
	Divergence() []float64
}

// Overlay draws optional debugging visuals on top of the base simulation:
// velocity arrows and a divergence tint.
type Overlay struct {
	sim            core.Sim
	scale          int
	showVelocity   bool
	showDivergence bool

	divImg *ebiten.Image
	divBuf []byte

	samples      []arrowSample
	sampleW      int
	sampleH      int
	sampleScale  int
	samplePixels float64
}

type arrowSample struct {
	idx    int
	sx, sy float64
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: max(scale, 1)}
}

// Update toggles overlay layers from the keyboard.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showVelocity = !o.showVelocity
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showDivergence = !o.showDivergence
	}
}

// Draw renders the enabled layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if o.showDivergence {
		if provider, ok := o.sim.(divergenceProvider); ok {
			o.drawDivergence(screen, provider.Divergence(), size)
		}
	}
	if o.showVelocity {
		o.drawVelocity(screen, o.sim.Velocity(), size)
	}
}

func (o *Overlay) drawDivergence(screen *ebiten.Image, div []float64, size core.Size) {
	total := size.Cells()
	if len(div) != total {
		return
	}
	if o.divImg == nil || o.divImg.Bounds().Dx() != size.W || o.divImg.Bounds().Dy() != size.H {
		o.divImg = ebiten.NewImage(size.W, size.H)
		o.divBuf = make([]byte, 4*total)
	}
	var peak float64
	for _, d := range div {
		peak = math.Max(peak, math.Abs(d))
	}
	render.FillDivergenceRGBA(o.divBuf, div, peak)
	o.divImg.WritePixels(o.divBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.divImg, op)
}

func (o *Overlay) drawVelocity(screen *ebiten.Image, vel []float64, size core.Size) {
	if len(vel) != 2*size.Cells() || !o.ensureSamples(size) {
		return
	}
	const headAngle = math.Pi / 6

	peak := render.PeakSpeed(vel)
	if peak == 0 {
		return
	}
	maxLength := o.samplePixels * 0.8
	for _, s := range o.samples {
		vx, vy := vel[2*s.idx], vel[2*s.idx+1]
		speed := math.Hypot(vx, vy)
		normalized := speed / peak
		if normalized < 0.03 {
			continue
		}
		length := maxLength * math.Sqrt(normalized)
		nx, ny := vx/speed, vy/speed
		tipX, tipY := s.sx+nx*length*0.5, s.sy+ny*length*0.5
		tailX, tailY := s.sx-nx*length*0.5, s.sy-ny*length*0.5
		col := render.VelocityColor(vx, vy, peak)
		col.A = uint8(140 + 100*normalized)
		width := float32(math.Max(1, float64(o.scale)*0.5))

		vector.StrokeLine(screen, float32(tailX), float32(tailY), float32(tipX), float32(tipY), width, col, true)
		head := length * 0.3
		angle := math.Atan2(ny, nx)
		for _, side := range []float64{-1, 1} {
			hx := tipX - math.Cos(angle+side*headAngle)*head
			hy := tipY - math.Sin(angle+side*headAngle)*head
			vector.StrokeLine(screen, float32(tipX), float32(tipY), float32(hx), float32(hy), width, col, true)
		}
	}
}

func (o *Overlay) ensureSamples(size core.Size) bool {
	if o.sampleW == size.W && o.sampleH == size.H && o.sampleScale == o.scale && len(o.samples) > 0 {
		return true
	}

	const (
		targetSamples = 400.0
		minSpacing    = 3
		maxSpacing    = 16
	)
	spacing := int(math.Sqrt(float64(size.Cells()) / targetSamples))
	spacing = min(max(spacing, minSpacing), maxSpacing)

	o.samples = o.samples[:0]
	for y := spacing / 2; y < size.H; y += spacing {
		for x := spacing / 2; x < size.W; x += spacing {
			o.samples = append(o.samples, arrowSample{
				idx: size.Index(x, y),
				sx:  (float64(x) + 0.5) * float64(o.scale),
				sy:  (float64(y) + 0.5) * float64(o.scale),
			})
		}
	}
	o.sampleW, o.sampleH, o.sampleScale = size.W, size.H, o.scale
	o.samplePixels = float64(spacing * o.scale)
	return len(o.samples) > 0
}
