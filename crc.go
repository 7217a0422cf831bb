package csdat

import (
	"fmt"
	"hash/crc32"
)

// crcBytes returns the CRC-32 of a sector file's contents as the catalog
// stores it.
func crcBytes(b []byte) string {
	return fmt.Sprintf("%.*X", crc32.Size<<1, crc32.ChecksumIEEE(b))
}
