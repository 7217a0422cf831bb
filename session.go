package csdat

import (
	"errors"
	"fmt"

	"github.com/bodgit/csdat/grid"
	"github.com/bodgit/csdat/sector"
)

const maxSectors = 100

// Options configures the shape of the sector grid being imported.
type Options struct {
	// SectorsX and SectorsY are the dimensions of the row-major sector
	// grid, between 1 and 100 each.
	SectorsX int
	SectorsY int

	// GridSize is the per-sector heightmap resolution. All sectors of a
	// terrain share the same grid size.
	GridSize int
}

// DefaultOptions returns the dimensions of a standard 8 by 8 terrain.
func DefaultOptions() Options {
	return Options{
		SectorsX: 8,
		SectorsY: 8,
		GridSize: sector.DefaultGridSize,
	}
}

func (o Options) validate() error {
	if o.SectorsX < 1 || o.SectorsX > maxSectors {
		return fmt.Errorf("csdat: sectors x out of range: %d", o.SectorsX)
	}
	if o.SectorsY < 1 || o.SectorsY > maxSectors {
		return fmt.Errorf("csdat: sectors y out of range: %d", o.SectorsY)
	}
	if o.GridSize < 1 {
		return fmt.Errorf("csdat: grid size out of range: %d", o.GridSize)
	}
	return nil
}

var errWrongSize = errors.New("csdat: display image is wrong size")

// Session holds the state of one edit cycle: the directory the sectors
// were read from, the grid dimensions, and the decoded sector grids. It is
// created by Import and consumed by Export.
type Session struct {
	dir     string
	opts    Options
	sectors map[int]*grid.Grid
	paths   map[int]string
	mosaic  *grid.Grid
}

// Directory returns the directory the sectors were loaded from.
func (s *Session) Directory() string { return s.dir }

// Options returns the grid dimensions the session was imported with.
func (s *Session) Options() Options { return s.opts }

// Len returns the number of sectors that decoded successfully.
func (s *Session) Len() int { return len(s.sectors) }

// Sector returns the file-space elevation grid for the given sector index,
// or false if that sector was absent or skipped during import.
func (s *Session) Sector(index int) (*grid.Grid, bool) {
	g, ok := s.sectors[index]
	return g, ok
}

// Mosaic returns the assembled display-space heightmap. Missing sectors
// appear as flat zero patches.
func (s *Session) Mosaic() *grid.Grid { return s.mosaic }

// MinMax returns the elevation range over the loaded sector grids only,
// ignoring the zero patches of any missing sectors. This is the range
// Export expects back.
func (s *Session) MinMax() (min, max float64) {
	first := true
	for _, g := range s.sectors {
		lo, hi := g.MinMax()
		if first || lo < min {
			min = lo
		}
		if first || hi > max {
			max = hi
		}
		first = false
	}
	return min, max
}

// Display returns the mosaic normalized to [0, 1] for external editing,
// along with the mosaic minimum and maximum that the normalization used.
func (s *Session) Display() (*grid.Grid, float64, float64) {
	return grid.Normalize(s.mosaic)
}
