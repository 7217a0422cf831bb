package grid_test

import (
	"testing"

	"github.com/bodgit/csdat/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSectors fills every slot of a sectorsX by sectorsY grid with a
// distinct, asymmetric sector so transform mistakes can't cancel out.
func testSectors(sectorsX, sectorsY, gridSize int) map[int]*grid.Grid {
	sectors := make(map[int]*grid.Grid)
	for i := 0; i < sectorsX*sectorsY; i++ {
		g := grid.New(gridSize, gridSize)
		for y := 0; y < gridSize; y++ {
			for x := 0; x < gridSize; x++ {
				g.Set(x, y, float64(i*1000+y*gridSize+x))
			}
		}
		sectors[i] = g
	}
	return sectors
}

func TestComposeDimensions(t *testing.T) {
	m := grid.Compose(testSectors(3, 2, 4), 3, 2, 4)

	// The final quarter turn swaps the axes
	assert.Equal(t, 2*4, m.Width())
	assert.Equal(t, 3*4, m.Height())
}

func TestComposeSplitRoundTrip(t *testing.T) {
	const (
		sectorsX = 3
		sectorsY = 2
		gridSize = 4
	)

	sectors := testSectors(sectorsX, sectorsY, gridSize)

	out := grid.Split(grid.Compose(sectors, sectorsX, sectorsY, gridSize), sectorsX, sectorsY, gridSize)

	require.Len(t, out, sectorsX*sectorsY)
	for i, want := range sectors {
		assert.Equal(t, want, out[i], "sector %d", i)
	}
}

func TestComposeSplitSparse(t *testing.T) {
	const (
		sectorsX = 2
		sectorsY = 2
		gridSize = 3
	)

	sectors := testSectors(sectorsX, sectorsY, gridSize)
	delete(sectors, 1)
	delete(sectors, 2)

	out := grid.Split(grid.Compose(sectors, sectorsX, sectorsY, gridSize), sectorsX, sectorsY, gridSize)

	for _, i := range []int{0, 3} {
		assert.Equal(t, sectors[i], out[i], "sector %d", i)
	}
	for _, i := range []int{1, 2} {
		assert.Equal(t, grid.New(gridSize, gridSize), out[i], "sector %d", i)
	}
}

func TestComposeMissingSectorZeroPatch(t *testing.T) {
	const (
		sectorsX = 8
		sectorsY = 8
		gridSize = 4
	)

	sectors := make(map[int]*grid.Grid)
	for i := 0; i < sectorsX*sectorsY; i++ {
		if i == 3 {
			continue
		}
		g := grid.New(gridSize, gridSize)
		for y := 0; y < gridSize; y++ {
			for x := 0; x < gridSize; x++ {
				g.Set(x, y, 1)
			}
		}
		sectors[i] = g
	}

	m := grid.Compose(sectors, sectorsX, sectorsY, gridSize)

	// Exactly one sector's worth of zeros, in one aligned square block
	minX, minY := m.Width(), m.Height()
	maxX, maxY := -1, -1
	zeros := 0
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.At(x, y) != 0 {
				continue
			}
			zeros++
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	require.Equal(t, gridSize*gridSize, zeros)
	assert.Equal(t, gridSize-1, maxX-minX)
	assert.Equal(t, gridSize-1, maxY-minY)
	assert.Zero(t, minX%gridSize)
	assert.Zero(t, minY%gridSize)
}
