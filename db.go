package csdat

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/bodgit/csdat/sector"
	_ "github.com/mattn/go-sqlite3"
)

// SectorInfo is one catalog row describing a scanned sector file. The
// catalog is an audit aid: capture a directory before and after an edit
// cycle and diff the CRCs to see exactly which sectors changed.
type SectorInfo struct {
	Index int
	Path  string
	Size  int64
	CRC   string
	Min   float64
	Max   float64
}

type CatalogDB struct {
	db *sql.DB
}

func NewCatalogDB(file string) (*CatalogDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS sector (idx INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL, size INTEGER NOT NULL, crc TEXT NOT NULL, min REAL NOT NULL, max REAL NOT NULL)"); err != nil {
		return nil, err
	}

	return &CatalogDB{
		db: db,
	}, nil
}

func (db *CatalogDB) Close() error {
	return db.db.Close()
}

// Put inserts or replaces the catalog row for info's sector index.
func (db *CatalogDB) Put(info SectorInfo) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO sector (idx, path, size, crc, min, max) VALUES (?, ?, ?, ?, ?, ?)", info.Index, info.Path, info.Size, info.CRC, info.Min, info.Max); err != nil {
		return err
	}
	return nil
}

// Sector returns the catalog row for the given index, or nil if there
// isn't one.
func (db *CatalogDB) Sector(index int) (*SectorInfo, error) {
	info := SectorInfo{Index: index}
	switch err := db.db.QueryRow("SELECT path, size, crc, min, max FROM sector WHERE idx = ?", index).Scan(&info.Path, &info.Size, &info.CRC, &info.Min, &info.Max); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &info, nil
	default:
		return nil, err
	}
}

// Sectors returns every catalog row ordered by sector index.
func (db *CatalogDB) Sectors() ([]SectorInfo, error) {
	rows, err := db.db.Query("SELECT idx, path, size, crc, min, max FROM sector ORDER BY idx")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []SectorInfo
	for rows.Next() {
		var info SectorInfo
		if err := rows.Scan(&info.Index, &info.Path, &info.Size, &info.CRC, &info.Min, &info.Max); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

func (e *Editor) catalogWorker(ctx context.Context, db *CatalogDB, gridSize int, wg *sync.WaitGroup, in <-chan sectorFile, out chan<- int) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer wg.Done()
		for f := range in {
			b, err := os.ReadFile(f.path)
			if err != nil {
				e.logger.Printf("Skipping sector %d: %v\n", f.index, err)
				continue
			}

			g, err := sector.Decode(b, gridSize)
			if err != nil {
				e.logger.Printf("Skipping sector %d (\"%s\"): %v\n", f.index, f.path, err)
				continue
			}

			min, max := g.MinMax()
			if err := db.Put(SectorInfo{
				Index: f.index,
				Path:  f.path,
				Size:  int64(len(b)),
				CRC:   crcBytes(b),
				Min:   min,
				Max:   max,
			}); err != nil {
				errc <- err
				return
			}

			select {
			case out <- f.index:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return errc
}

// Catalog scans dir and records one row per decodable sector file,
// returning the number of sectors cataloged. Unreadable or truncated
// sectors are skipped like during Import; database errors are fatal.
func (e *Editor) Catalog(ctx context.Context, dir string, db *CatalogDB, opts Options) (int, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}

	files, err := e.listSectors(dir)
	if err != nil {
		return 0, err
	}

	in, perrc := e.sectorSource(ctx, files)

	out := make(chan int)
	errcList := []<-chan error{perrc}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		errcList = append(errcList, e.catalogWorker(ctx, db, opts.GridSize, &wg, in, out))
	}
	go func() {
		wg.Wait()
		close(out)
	}()

	var count int
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range out {
			count++
		}
	}()

	err = waitForPipeline(errcList...)
	<-done
	if err != nil {
		return count, err
	}

	return count, nil
}
