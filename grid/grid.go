/*
Package grid implements the elevation grid math used by the CSDAT terrain
format: a dense 2-D array of elevation samples together with the axis flips
and quarter turns that map sector file space to display space, assembly of
many sector grids into one mosaic, and min/max normalization for external
editing through an image representation.
*/
package grid

// Grid is a dense row-major 2-D array of elevation samples.
type Grid struct {
	w, h int
	data []float64
}

// New returns a zero-filled grid of the given dimensions.
func New(w, h int) *Grid {
	return &Grid{
		w:    w,
		h:    h,
		data: make([]float64, w*h),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// At returns the sample at column x, row y.
func (g *Grid) At(x, y int) float64 { return g.data[y*g.w+x] }

// Set stores v at column x, row y.
func (g *Grid) Set(x, y int, v float64) { g.data[y*g.w+x] = v }

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		w:    g.w,
		h:    g.h,
		data: append([]float64(nil), g.data...),
	}
}

// FlipUD returns a new grid with the row order reversed.
func (g *Grid) FlipUD() *Grid {
	out := New(g.w, g.h)
	for y := 0; y < g.h; y++ {
		copy(out.data[(g.h-1-y)*g.w:(g.h-y)*g.w], g.data[y*g.w:(y+1)*g.w])
	}
	return out
}

// FlipLR returns a new grid with the column order reversed.
func (g *Grid) FlipLR() *Grid {
	out := New(g.w, g.h)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			out.Set(g.w-1-x, y, g.At(x, y))
		}
	}
	return out
}

// Rot90CCW returns a new grid rotated a quarter turn counter-clockwise.
// The last column of the input becomes the first row of the output.
func (g *Grid) Rot90CCW() *Grid {
	out := New(g.h, g.w)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			out.Set(y, g.w-1-x, g.At(x, y))
		}
	}
	return out
}

// Rot90CW returns a new grid rotated a quarter turn clockwise. It is the
// exact inverse of Rot90CCW.
func (g *Grid) Rot90CW() *Grid {
	out := New(g.h, g.w)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			out.Set(g.h-1-y, x, g.At(x, y))
		}
	}
	return out
}

// MinMax returns the smallest and largest sample in the grid. Both are zero
// for an empty grid.
func (g *Grid) MinMax() (min, max float64) {
	if len(g.data) == 0 {
		return 0, 0
	}
	min, max = g.data[0], g.data[0]
	for _, v := range g.data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
