package collect

import (
	"fmt"
	"os"
	"path/filepath"

	"bozocatalog/internal/catalog"
)

// stampLen is the fixed width of the "YYYY-MM-DD_HH-MM-SS" prefix in a
// canonical stored filename.
const stampLen = len("2006-01-02_15-04-05")

// ResyncStoredNames is a supplemented feature (not one of C1-C9): after a
// hash-algorithm migration rewrites chk values, stored filenames still
// embed the old checksum's first 7 hex characters. This walks every stored
// record and renames its file to embed the current chk's first 7
// characters instead, skipping names that already match.
func ResyncStoredNames(c *catalog.Catalog, root string) (renamed, skipped int, err error) {
	for _, list := range c.PhotoDB {
		for _, r := range list {
			if !r.Stored() {
				continue
			}
			newName, ok := renameStoredSegment(r.Sto, checksumPrefix(r.Chk))
			if !ok {
				skipped++
				continue
			}
			if newName == r.Sto {
				skipped++
				continue
			}
			oldAbs := filepath.Join(root, r.Sto)
			newAbs := filepath.Join(root, newName)
			if err := os.Rename(oldAbs, newAbs); err != nil {
				return renamed, skipped, fmt.Errorf("collect: resync rename %s: %w", oldAbs, err)
			}
			r.Sto = newName
			renamed++
		}
	}
	return renamed, skipped, nil
}

func checksumPrefix(chk string) string {
	if len(chk) > 7 {
		return chk[:7]
	}
	return chk
}

// renameStoredSegment rewrites the embedded checksum prefix of a canonical
// stored relative path "<dir>/<stamp>-<chk7>-<basename>" to newChk7. ok is
// false when rel doesn't match the canonical layout closely enough to
// safely rewrite (e.g. a hand-placed file).
func renameStoredSegment(rel, newChk7 string) (string, bool) {
	dir := filepath.Dir(rel)
	base := filepath.Base(rel)
	if len(base) < stampLen+2+len(newChk7) {
		return "", false
	}
	if base[stampLen] != '-' || base[stampLen+1+len(newChk7)] != '-' {
		return "", false
	}
	newBase := base[:stampLen+1] + newChk7 + base[stampLen+1+len(newChk7):]
	return filepath.Join(dir, newBase), true
}
