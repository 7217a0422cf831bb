package csdat

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/bodgit/csdat/grid"
	"github.com/ericpauley/go-quantize/quantize"
)

const previewColors = 256

// DisplayImage converts a normalized display grid into a 16-bit grayscale
// image with equal color channels and full opacity, suitable for external
// editing. With rotate set the image is turned an extra quarter turn
// counter-clockwise for on-screen orientation; DisplayGrid undoes it.
func DisplayImage(display *grid.Grid, rotate bool) *image.NRGBA64 {
	g := display
	if rotate {
		g = g.Rot90CCW()
	}

	m := image.NewNRGBA64(image.Rect(0, 0, g.Width(), g.Height()))
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			v := g.At(x, y)
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			s := uint16(math.Round(v * math.MaxUint16))
			m.SetNRGBA64(x, y, color.NRGBA64{R: s, G: s, B: s, A: math.MaxUint16})
		}
	}

	return m
}

// DisplayGrid converts an edited image back into a normalized display
// grid, reading the red channel. rotate must match the DisplayImage call
// that produced the image.
func DisplayGrid(m image.Image, rotate bool) *grid.Grid {
	b := m.Bounds()

	g := grid.New(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, _, _, _ := m.At(x, y).RGBA()
			g.Set(x-b.Min.X, y-b.Min.Y, float64(r)/math.MaxUint16)
		}
	}

	if rotate {
		g = g.Rot90CW()
	}
	return g
}

// EncodePreview writes the display grid to w as a paletted GIF, quantizing
// the grayscale ramp down to 256 colors.
func EncodePreview(w io.Writer, display *grid.Grid) error {
	src := DisplayImage(display, false)

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(src.Bounds(), q.Quantize(make(color.Palette, 0, previewColors), src))
	draw.Draw(pm, src.Bounds(), src, src.Bounds().Min, draw.Src)

	return gif.Encode(w, pm, nil)
}
