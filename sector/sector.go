/*
Package sector implements a CSDAT terrain sector decoder and encoder.

A sector file starts with 708 bytes of opaque header, followed by the
elevation region: one 4-byte cell per grid position in row-major order,
each cell holding a little-endian unsigned 16-bit elevation sample in units
of 1/128 followed by 2 bytes of unrelated payload. Anything after the
region is an opaque trailer. Decode and Encode touch only the sample bytes;
the header, per-cell payload and trailer are preserved verbatim so that an
unedited decode/encode cycle reproduces the original file bit-for-bit.
*/
package sector

const (
	// DefaultGridSize is the per-sector heightmap resolution used by every
	// known CSDAT terrain.
	DefaultGridSize = 65

	headerSize = 708

	// Each cell is 2 sample bytes plus 2 opaque bytes.
	sampleSize = 2
	cellStride = 4

	// Samples are fixed-point with 1/128 resolution.
	sampleScale = 128.0
)

// MinSize returns the smallest file length able to hold a full elevation
// region for the given grid size.
func MinSize(gridSize int) int {
	return headerSize + gridSize*gridSize*cellStride
}
