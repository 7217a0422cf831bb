package sector

import (
	"encoding/binary"
	"errors"

	"github.com/bodgit/csdat/grid"
)

// ErrTruncated is returned by Decode when the buffer runs out before the
// last elevation sample. Callers should treat it as a soft failure and skip
// the sector rather than abort a whole batch.
var ErrTruncated = errors.New("sector: truncated elevation region")

// Decode reads the elevation region from a sector file's bytes and returns
// it as a gridSize by gridSize elevation grid.
func Decode(b []byte, gridSize int) (*grid.Grid, error) {
	g := grid.New(gridSize, gridSize)

	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			off := headerSize + (y*gridSize+x)*cellStride
			if off+sampleSize > len(b) {
				return nil, ErrTruncated
			}
			g.Set(x, y, float64(binary.LittleEndian.Uint16(b[off:]))/sampleScale)
		}
	}

	return g, nil
}
