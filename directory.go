package csdat

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// ErrNoSectors is returned by Import when a directory yields no usable
// sector files. It is distinct from a batch where only some sectors failed
// to decode.
var ErrNoSectors = errors.New("csdat: no sector files found")

var sectorName = regexp.MustCompile(`^sd(\d+)\.csdat$`)

type sectorFile struct {
	index int
	path  string
}

// listSectors scans dir for files named sd<index>.csdat, ordered by index.
// Names that don't match the pattern are ignored. Two names parsing to the
// same index (leading zeros) collapse to the last one discovered.
func (e *Editor) listSectors(dir string) ([]sectorFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []sectorFile
	seen := make(map[int]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := sectorName.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if i, ok := seen[index]; ok {
			e.logger.Printf("Duplicate sector %d: \"%s\" replaces \"%s\"\n", index, path, files[i].path)
			files[i].path = path
			continue
		}
		seen[index] = len(files)
		files = append(files, sectorFile{
			index: index,
			path:  path,
		})
	}

	if len(files) == 0 {
		return nil, ErrNoSectors
	}

	sort.Slice(files, func(i, j int) bool { return files[i].index < files[j].index })

	return files, nil
}
