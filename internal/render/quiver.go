package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"
)

// QuiverOptions controls the velocity arrow export.
type QuiverOptions struct {
	// Scale is the pixel size of one grid cell.
	Scale int
	// Stride is the spacing in cells between arrows.
	Stride int
	// MaxDensity maps onto the brightest background colour. Zero picks the
	// grid maximum.
	MaxDensity float64
}

func (o QuiverOptions) normalized() QuiverOptions {
	if o.Scale <= 0 {
		o.Scale = 4
	}
	if o.Stride <= 0 {
		o.Stride = 4
	}
	return o
}

// DrawQuiver paints density as the background and one arrow per Stride cells
// showing velocity direction, length and hue.
func DrawQuiver(velocity, density []float64, w, h int, opt QuiverOptions) (image.Image, error) {
	if len(density) != w*h || len(velocity) != 2*w*h {
		return nil, fmt.Errorf("quiver: field sizes %d/%d do not match %dx%d", len(density), len(velocity), w, h)
	}
	opt = opt.normalized()
	scale := float64(opt.Scale)

	bg := image.NewRGBA(image.Rect(0, 0, w, h))
	maxDensity := opt.MaxDensity
	if maxDensity <= 0 {
		for _, d := range density {
			maxDensity = math.Max(maxDensity, d)
		}
	}
	FillDensityRGBA(bg.Pix, density, DensityPalette(256), maxDensity)

	dc := gg.NewContext(w*opt.Scale, h*opt.Scale)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.Push()
	dc.Scale(scale, scale)
	dc.DrawImage(bg, 0, 0)
	dc.Pop()

	peak := PeakSpeed(velocity)
	if peak == 0 {
		return dc.Image(), nil
	}
	span := float64(opt.Stride) * scale * 0.9
	dc.SetLineWidth(math.Max(1, scale/4))
	for y := opt.Stride / 2; y < h; y += opt.Stride {
		for x := opt.Stride / 2; x < w; x += opt.Stride {
			i := y*w + x
			vx, vy := velocity[2*i], velocity[2*i+1]
			speed := math.Hypot(vx, vy)
			if speed < peak*0.02 {
				continue
			}
			length := span * speed / peak
			cx, cy := (float64(x)+0.5)*scale, (float64(y)+0.5)*scale
			tx, ty := cx+vx/speed*length, cy+vy/speed*length
			dc.SetColor(VelocityColor(vx, vy, peak))
			dc.DrawLine(cx, cy, tx, ty)
			angle := math.Atan2(vy, vx)
			head := length * 0.3
			dc.DrawLine(tx, ty, tx-head*math.Cos(angle-math.Pi/6), ty-head*math.Sin(angle-math.Pi/6))
			dc.DrawLine(tx, ty, tx-head*math.Cos(angle+math.Pi/6), ty-head*math.Sin(angle+math.Pi/6))
			dc.Stroke()
		}
	}
	return dc.Image(), nil
}

// WriteQuiverPNG encodes DrawQuiver output as PNG.
func WriteQuiverPNG(out io.Writer, velocity, density []float64, w, h int, opt QuiverOptions) error {
	img, err := DrawQuiver(velocity, density, w, h, opt)
	if err != nil {
		return err
	}
	return png.Encode(out, img)
}

// SaveQuiverPNG writes WriteQuiverPNG output to path.
func SaveQuiverPNG(path string, velocity, density []float64, w, h int, opt QuiverOptions) error {
	return writeFile(path, func(out io.Writer) error {
		return WriteQuiverPNG(out, velocity, density, w, h, opt)
	})
}
