package csdat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bodgit/csdat/grid"
	"github.com/bodgit/csdat/sector"
)

const numWorkers = 10

func (e *Editor) sectorSource(ctx context.Context, files []sectorFile) (<-chan sectorFile, <-chan error) {
	out := make(chan sectorFile)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, f := range files {
			select {
			case out <- f:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}

type decoded struct {
	sectorFile
	grid *grid.Grid
}

func (e *Editor) decodeWorker(ctx context.Context, gridSize int, wg *sync.WaitGroup, in <-chan sectorFile, out chan<- decoded) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer wg.Done()
		for f := range in {
			b, err := os.ReadFile(f.path)
			if err != nil {
				// An unreadable sector leaves a zero patch, same as a truncated one
				e.logger.Printf("Skipping sector %d: %v\n", f.index, err)
				continue
			}

			g, err := sector.Decode(b, gridSize)
			if err != nil {
				e.logger.Printf("Skipping sector %d (\"%s\"): %v\n", f.index, f.path, err)
				continue
			}

			select {
			case out <- decoded{sectorFile: f, grid: g}:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return errc
}

func (e *Editor) decodeSectors(ctx context.Context, files []sectorFile, gridSize int) (map[int]decoded, error) {
	in, perrc := e.sectorSource(ctx, files)

	out := make(chan decoded)
	errcList := []<-chan error{perrc}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		errcList = append(errcList, e.decodeWorker(ctx, gridSize, &wg, in, out))
	}
	go func() {
		wg.Wait()
		close(out)
	}()

	results := make(map[int]decoded)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for d := range out {
			results[d.index] = d
		}
	}()

	err := waitForPipeline(errcList...)
	<-done
	if err != nil {
		return nil, err
	}

	return results, nil
}

// Import scans dir for sector files, decodes them concurrently and
// assembles the display-space mosaic. Sectors that fail to read or decode
// are skipped with a log line; a directory yielding no sectors at all is
// the one fatal condition, reported as ErrNoSectors.
func (e *Editor) Import(ctx context.Context, dir string, opts Options) (*Session, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	files, err := e.listSectors(dir)
	if err != nil {
		return nil, err
	}

	results, err := e.decodeSectors(ctx, files, opts.GridSize)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoSectors
	}

	e.logger.Printf("Loaded %d sectors from \"%s\"\n", len(results), dir)

	sectors := make(map[int]*grid.Grid, len(results))
	paths := make(map[int]string, len(results))
	for index, d := range results {
		sectors[index] = d.grid
		paths[index] = d.path
	}

	return &Session{
		dir:     dir,
		opts:    opts,
		sectors: sectors,
		paths:   paths,
		mosaic:  grid.Compose(sectors, opts.SectorsX, opts.SectorsY, opts.GridSize),
	}, nil
}

type exportJob struct {
	index int
	path  string
	grid  *grid.Grid
}

type exportResult struct {
	index int
	err   error
}

func (e *Editor) exportSource(ctx context.Context, jobs []exportJob) (<-chan exportJob, <-chan error) {
	out := make(chan exportJob)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, j := range jobs {
			select {
			case out <- j:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}

func (e *Editor) writeSector(j exportJob, gridSize int) error {
	b, err := os.ReadFile(j.path)
	if err != nil {
		return err
	}

	out, err := sector.Encode(b, j.grid, gridSize)
	if err != nil {
		return err
	}

	return os.WriteFile(j.path, out, 0o644)
}

func (e *Editor) exportWorker(ctx context.Context, gridSize int, wg *sync.WaitGroup, in <-chan exportJob, out chan<- exportResult) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer wg.Done()
		for j := range in {
			res := exportResult{index: j.index}
			if err := e.writeSector(j, gridSize); err != nil {
				e.logger.Printf("Failed to write sector %d: %v\n", j.index, err)
				res.err = err
			}

			select {
			case out <- res:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return errc
}

// Export maps the edited display image back into elevation units using min
// and max, splits it into per-sector grids and rewrites each loaded
// sector's file in place, preserving every byte outside the elevation
// samples. Per-file failures are counted and logged, never fatal to the
// batch; the returned counts are valid even when err is non-nil.
//
// min and max should come from Session.MinMax at export time, not from
// values cached at import.
func (e *Editor) Export(ctx context.Context, s *Session, display *grid.Grid, min, max float64) (written, failed int, err error) {
	opts := s.opts

	if display.Width() != opts.SectorsY*opts.GridSize || display.Height() != opts.SectorsX*opts.GridSize {
		return 0, 0, errWrongSize
	}

	blocks := grid.Split(grid.Denormalize(display, min, max), opts.SectorsX, opts.SectorsY, opts.GridSize)

	// Only sectors present at import are written back; indices beyond the
	// sector grid have no display slot and are left alone.
	jobs := make([]exportJob, 0, len(s.sectors))
	for index := range s.sectors {
		g, ok := blocks[index]
		if !ok {
			continue
		}
		jobs = append(jobs, exportJob{
			index: index,
			path:  s.paths[index],
			grid:  g,
		})
	}

	in, perrc := e.exportSource(ctx, jobs)

	out := make(chan exportResult)
	errcList := []<-chan error{perrc}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		errcList = append(errcList, e.exportWorker(ctx, opts.GridSize, &wg, in, out))
	}
	go func() {
		wg.Wait()
		close(out)
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range out {
			if r.err != nil {
				failed++
			} else {
				written++
			}
		}
	}()

	err = waitForPipeline(errcList...)
	<-done

	e.logger.Printf("Export complete, written: %d, failed: %d\n", written, failed)

	return written, failed, err
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// SectorFilename returns the conventional filename for a sector index.
func SectorFilename(index int) string {
	return fmt.Sprintf("sd%d.csdat", index)
}
