package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
)

func TestDensityPaletteEndpoints(t *testing.T) {
	pal := DensityPalette(16)
	if len(pal) != 16 {
		t.Fatalf("len = %d, want 16", len(pal))
	}
	first, last := pal[0], pal[len(pal)-1]
	if int(first.R)+int(first.G)+int(first.B) >= int(last.R)+int(last.G)+int(last.B) {
		t.Fatalf("palette not dark-to-bright: first %v last %v", first, last)
	}
	for i, c := range pal {
		if c.A != 255 {
			t.Fatalf("entry %d alpha = %d", i, c.A)
		}
	}
}

func TestFillDensityRGBA(t *testing.T) {
	pal := []color.RGBA{{R: 1, A: 255}, {R: 2, A: 255}, {R: 3, A: 255}}
	buf := make([]byte, 4*4)
	FillDensityRGBA(buf, []float64{0, 0.5, 1, 7}, pal, 1)
	want := []byte{1, 2, 3, 3}
	for i, r := range want {
		if buf[4*i] != r {
			t.Fatalf("pixel %d red = %d, want %d", i, buf[4*i], r)
		}
	}

	FillDensityRGBA(buf, []float64{1, 1, 1, 1}, nil, 1)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("empty palette left byte %d = %d", i, b)
		}
	}
}

func TestVelocityColorHue(t *testing.T) {
	if c := VelocityColor(0, 0, 1); c != (color.RGBA{A: 255}) {
		t.Fatalf("still cell = %v, want black", c)
	}
	right := VelocityColor(1, 0, 1)
	if right.R != 255 || right.G != 0 || right.B != 0 {
		t.Fatalf("+x = %v, want pure red", right)
	}
	half := VelocityColor(0.5, 0, 1)
	if half.R >= right.R {
		t.Fatalf("slower flow must be darker: %v vs %v", half, right)
	}
	if left := VelocityColor(-1, 0, 1); left.R != 0 || left.B != 255 {
		t.Fatalf("-x = %v, want cyan", left)
	}
}

func TestPeakSpeed(t *testing.T) {
	if got := PeakSpeed([]float64{3, 4, 0, 1, -6, 8}); got != 10 {
		t.Fatalf("PeakSpeed = %v, want 10", got)
	}
}

func TestFillDivergenceRGBA(t *testing.T) {
	buf := make([]byte, 12)
	FillDivergenceRGBA(buf, []float64{2, -2, 0}, 1)
	if buf[0] != 255 || buf[3] != 160 {
		t.Fatalf("source pixel = %v", buf[0:4])
	}
	if buf[6] != 255 || buf[7] != 160 {
		t.Fatalf("sink pixel = %v", buf[4:8])
	}
	if buf[11] != 0 {
		t.Fatalf("neutral alpha = %d", buf[11])
	}
}

func TestWriteHeatmapPNG(t *testing.T) {
	var out bytes.Buffer
	values := make([]float64, 8*6)
	values[3*8+4] = 2
	if err := WriteHeatmapPNG(&out, "density", values, 8, 6, 2); err != nil {
		t.Fatalf("WriteHeatmapPNG: %v", err)
	}
	if _, err := png.Decode(&out); err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if err := WriteHeatmapPNG(&out, "bad", values[:5], 8, 6, 2); err == nil {
		t.Fatal("expected size mismatch error")
	}
}

func TestWriteHeatmapPNGConstantField(t *testing.T) {
	var out bytes.Buffer
	if err := WriteHeatmapPNG(&out, "flat", make([]float64, 9), 3, 3, 1); err != nil {
		t.Fatalf("constant field: %v", err)
	}
}

func TestDrawQuiverSize(t *testing.T) {
	w, h := 10, 8
	vel := make([]float64, 2*w*h)
	den := make([]float64, w*h)
	for i := 0; i < w*h; i++ {
		vel[2*i] = 1
		den[i] = float64(i)
	}
	img, err := DrawQuiver(vel, den, w, h, QuiverOptions{Scale: 3, Stride: 2})
	if err != nil {
		t.Fatalf("DrawQuiver: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 24 {
		t.Fatalf("bounds = %v, want 30x24", b)
	}
	var out bytes.Buffer
	if err := WriteQuiverPNG(&out, vel, den, w, h, QuiverOptions{}); err != nil {
		t.Fatalf("WriteQuiverPNG: %v", err)
	}
	if _, err := DrawQuiver(vel[:4], den, w, h, QuiverOptions{}); err == nil {
		t.Fatal("expected size mismatch error")
	}
}
