package sector

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/bodgit/csdat/grid"
)

// ErrTooSmall is returned by Encode when the original file bytes cannot
// hold a full elevation region for the requested grid size.
var ErrTooSmall = errors.New("sector: file smaller than elevation region")

var errWrongSize = errors.New("sector: grid is wrong size")

// Encode writes the elevation grid back into a copy of the original sector
// file bytes, overwriting only the 2 sample bytes of each cell. Samples are
// rounded to the nearest 1/128 and clamped to the unsigned 16-bit range.
func Encode(original []byte, g *grid.Grid, gridSize int) ([]byte, error) {
	if len(original) < MinSize(gridSize) {
		return nil, ErrTooSmall
	}

	if g.Width() != gridSize || g.Height() != gridSize {
		return nil, errWrongSize
	}

	out := append([]byte(nil), original...)

	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			v := math.Round(g.At(x, y) * sampleScale)
			if v < 0 {
				v = 0
			} else if v > math.MaxUint16 {
				v = math.MaxUint16
			}
			binary.LittleEndian.PutUint16(out[headerSize+(y*gridSize+x)*cellStride:], uint16(v))
		}
	}

	return out, nil
}
