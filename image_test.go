package csdat

import (
	"bytes"
	"image/gif"
	"math"
	"testing"

	"github.com/bodgit/csdat/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDisplay(w, h int) *grid.Grid {
	g := grid.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Exactly representable 16-bit levels
			g.Set(x, y, float64((y*w+x)*257%65536)/math.MaxUint16)
		}
	}
	return g
}

func TestDisplayImageRoundTrip(t *testing.T) {
	g := testDisplay(5, 3)

	for _, rotate := range []bool{false, true} {
		assert.Equal(t, g, DisplayGrid(DisplayImage(g, rotate), rotate), "rotate %v", rotate)
	}
}

func TestDisplayImageChannels(t *testing.T) {
	g := grid.New(2, 1)
	g.Set(0, 0, 0.5)
	g.Set(1, 0, 1)

	m := DisplayImage(g, false)

	for x := 0; x < 2; x++ {
		c := m.NRGBA64At(x, 0)
		assert.Equal(t, c.R, c.G)
		assert.Equal(t, c.R, c.B)
		assert.Equal(t, uint16(math.MaxUint16), c.A)
	}
	assert.Equal(t, uint16(math.MaxUint16), m.NRGBA64At(1, 0).R)
}

func TestDisplayImageRotated(t *testing.T) {
	g := grid.New(3, 2)
	g.Set(0, 0, 1)

	m := DisplayImage(g, true)

	// A quarter turn counter-clockwise swaps the axes
	assert.Equal(t, 2, m.Bounds().Dx())
	assert.Equal(t, 3, m.Bounds().Dy())
}

func TestDisplayImageClamps(t *testing.T) {
	g := grid.New(2, 1)
	g.Set(0, 0, -0.5)
	g.Set(1, 0, 1.5)

	m := DisplayImage(g, false)

	assert.Equal(t, uint16(0), m.NRGBA64At(0, 0).R)
	assert.Equal(t, uint16(math.MaxUint16), m.NRGBA64At(1, 0).R)
}

func TestEncodePreview(t *testing.T) {
	g := testDisplay(8, 6)

	var b bytes.Buffer
	require.NoError(t, EncodePreview(&b, g))

	m, err := gif.Decode(&b)
	require.NoError(t, err)
	assert.Equal(t, 8, m.Bounds().Dx())
	assert.Equal(t, 6, m.Bounds().Dy())
}
