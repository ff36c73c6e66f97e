package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// denseGrid exposes a row-major grid as a plotter.GridXYZ with row 0 at the
// top of the image.
type denseGrid struct {
	m *mat.Dense
}

func (g denseGrid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g denseGrid) Z(c, r int) float64 {
	rows, _ := g.m.Dims()
	return g.m.At(rows-1-r, c)
}

func (g denseGrid) X(c int) float64 { return float64(c) }
func (g denseGrid) Y(r int) float64 { return float64(r) }

// WriteHeatmapPNG renders a w×h row-major scalar grid as a heatmap PNG of
// sizeIn×sizeIn inches.
func WriteHeatmapPNG(out io.Writer, title string, values []float64, w, h int, sizeIn float64) error {
	if len(values) != w*h || w == 0 || h == 0 {
		return fmt.Errorf("heatmap: %d values for %dx%d grid", len(values), w, h)
	}
	grid := denseGrid{m: mat.NewDense(h, w, append([]float64(nil), values...))}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	hm := plotter.NewHeatMap(grid, moreland.Kindlmann().Palette(255))
	hm.Min, hm.Max = floats.Min(values), floats.Max(values)
	if hm.Max <= hm.Min {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	if sizeIn <= 0 {
		sizeIn = 6
	}
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(sizeIn)*vg.Inch, vg.Length(sizeIn)*vg.Inch),
		vgimg.UseDPI(150),
	)
	p.Draw(draw.New(c))

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(out); err != nil {
		return fmt.Errorf("heatmap: write png: %w", err)
	}
	return nil
}

// SaveHeatmapPNG writes WriteHeatmapPNG output to path, creating parent
// directories.
func SaveHeatmapPNG(path, title string, values []float64, w, h int) error {
	return writeFile(path, func(out io.Writer) error {
		return WriteHeatmapPNG(out, title, values, w, h, 6)
	})
}

func writeFile(path string, fn func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
