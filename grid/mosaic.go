package grid

// Sector grids are stored on disk bottom row first, so sector row 0 sits at
// the bottom of the displayed terrain and each sector's rows run upside
// down relative to display order. Compose undoes both, then the whole
// mosaic is rotated a quarter turn counter-clockwise and mirrored
// left-right. Split applies the exact inverse so that unedited terrain
// survives a compose/split cycle bit-for-bit.

// Compose assembles the per-sector grids into one mosaic in display space.
// Sector indices are row-major over a sectorsX by sectorsY grid; indices
// absent from sectors are left as a flat zero patch.
func Compose(sectors map[int]*Grid, sectorsX, sectorsY, gridSize int) *Grid {
	m := New(sectorsX*gridSize, sectorsY*gridSize)

	for dr := 0; dr < sectorsY; dr++ {
		for c := 0; c < sectorsX; c++ {
			sectorRow := sectorsY - 1 - dr
			s, ok := sectors[sectorRow*sectorsX+c]
			if !ok {
				continue
			}
			m.setBlock(c*gridSize, dr*gridSize, s.FlipUD())
		}
	}

	return m.Rot90CCW().FlipLR()
}

// Split is the inverse of Compose: it cuts a display-space mosaic back into
// per-sector grids in file space. Every slot is returned; callers that only
// track a subset of sectors pick the indices they know about.
func Split(mosaic *Grid, sectorsX, sectorsY, gridSize int) map[int]*Grid {
	m := mosaic.FlipLR().Rot90CW()

	sectors := make(map[int]*Grid, sectorsX*sectorsY)
	for dr := 0; dr < sectorsY; dr++ {
		for c := 0; c < sectorsX; c++ {
			sectorRow := sectorsY - 1 - dr
			block := m.block(c*gridSize, dr*gridSize, gridSize, gridSize)
			sectors[sectorRow*sectorsX+c] = block.FlipUD()
		}
	}

	return sectors
}

func (g *Grid) setBlock(x0, y0 int, b *Grid) {
	for y := 0; y < b.h; y++ {
		copy(g.data[(y0+y)*g.w+x0:(y0+y)*g.w+x0+b.w], b.data[y*b.w:(y+1)*b.w])
	}
}

func (g *Grid) block(x0, y0, w, h int) *Grid {
	out := New(w, h)
	for y := 0; y < h; y++ {
		copy(out.data[y*w:(y+1)*w], g.data[(y0+y)*g.w+x0:(y0+y)*g.w+x0+w])
	}
	return out
}
