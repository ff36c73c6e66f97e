package render

import (
	"image/color"
	"math"

	"github.com/crazy3lf/colorconv"
	"github.com/mazznoer/colorgrad"
)

// DensityPalette samples n colours from the density gradient, darkest first.
func DensityPalette(n int) []color.RGBA {
	if n < 2 {
		n = 2
	}
	cols := colorgrad.Inferno().Colors(uint(n))
	out := make([]color.RGBA, len(cols))
	for i, c := range cols {
		out[i] = color.RGBAModel.Convert(c).(color.RGBA)
	}
	return out
}

// FillDensityRGBA converts density values into RGBA pixels in buf. Values are
// scaled so maxDensity maps to the last palette entry; when the palette is
// empty the buffer is cleared to transparent black.
func FillDensityRGBA(buf []byte, density []float64, palette []color.RGBA, maxDensity float64) {
	if len(palette) == 0 {
		clear(buf[:4*len(density)])
		return
	}
	if maxDensity <= 0 {
		maxDensity = 1
	}
	last := len(palette) - 1
	for i, d := range density {
		idx := int(clamp01(d/maxDensity) * float64(last))
		col := palette[idx]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// VelocityColor encodes direction as hue and speed relative to maxSpeed as
// brightness. Still cells are black.
func VelocityColor(vx, vy, maxSpeed float64) color.RGBA {
	speed := math.Hypot(vx, vy)
	if speed == 0 || maxSpeed <= 0 || math.IsNaN(speed) {
		return color.RGBA{A: 255}
	}
	hue := math.Mod(math.Atan2(vy, vx)*180/math.Pi+360, 360)
	r, g, b, err := colorconv.HSVToRGB(hue, 1, clamp01(speed/maxSpeed))
	if err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// FillVelocityRGBA converts an interleaved velocity grid into RGBA pixels.
func FillVelocityRGBA(buf []byte, velocity []float64, maxSpeed float64) {
	for i := 0; i < len(velocity)/2; i++ {
		col := VelocityColor(velocity[2*i], velocity[2*i+1], maxSpeed)
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// FillDivergenceRGBA tints sources red and sinks blue with alpha proportional
// to |div|/scale.
func FillDivergenceRGBA(buf []byte, divergence []float64, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	for i, d := range divergence {
		base := i * 4
		a := uint8(math.Round(160 * clamp01(math.Abs(d)/scale)))
		buf[base+0], buf[base+1], buf[base+2] = 40, 90, 255
		if d > 0 {
			buf[base+0], buf[base+1], buf[base+2] = 255, 70, 40
		}
		buf[base+3] = a
	}
}

// PeakSpeed returns the largest vector magnitude in an interleaved grid.
func PeakSpeed(velocity []float64) float64 {
	var peak float64
	for i := 0; i+1 < len(velocity); i += 2 {
		peak = math.Max(peak, math.Hypot(velocity[i], velocity[i+1]))
	}
	return peak
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
