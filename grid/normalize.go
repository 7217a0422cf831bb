package grid

// Normalize rescales the grid so the smallest sample maps to 0 and the
// largest to 1, returning the observed minimum and maximum alongside. A
// flat grid normalizes to all zeros.
func Normalize(g *Grid) (*Grid, float64, float64) {
	min, max := g.MinMax()

	out := New(g.w, g.h)
	if max > min {
		scale := max - min
		for i, v := range g.data {
			out.data[i] = (v - min) / scale
		}
	}
	return out, min, max
}

// Denormalize maps normalized samples back into elevation units using the
// min and max observed when the terrain was loaded. When max does not
// exceed min the source terrain was flat and every sample becomes max,
// regardless of the (all zero) normalized values.
func Denormalize(g *Grid, min, max float64) *Grid {
	out := New(g.w, g.h)
	if max > min {
		scale := max - min
		for i, v := range g.data {
			out.data[i] = v*scale + min
		}
	} else {
		for i := range out.data {
			out.data[i] = max
		}
	}
	return out
}
