package catalog

import (
	"context"
	"fmt"
	"os"

	"bozocatalog/internal/hashengine"
)

// BuildHashMap re-hashes every reachable source file under both the
// catalog's current hash algorithm and newAlgo, producing a verified
// old-checksum → new-checksum map for a hash-algorithm migration. Only the
// first record seen for each checksum is tried. A checksum whose source file
// exists but no longer hashes to the old digest (edited, or unreadable) is
// tagged "<oldchk>:<oldalgo>"; a checksum whose source file no longer exists
// gets no entry at all. MapHashes skips both kinds.
func BuildHashMap(ctx context.Context, c *Catalog, newAlgo HashAlgorithm) (map[string]string, error) {
	hashEngineAlgo := func(a HashAlgorithm) hashengine.Algorithm { return hashengine.Algorithm(a) }
	oldAlgo := c.HashAlgorithm

	type source struct {
		oldChk string
		src    string
	}
	var sources []source
	seen := make(map[string]bool)
	for _, list := range c.PhotoDB {
		for _, r := range list {
			if seen[r.Chk] {
				continue
			}
			seen[r.Chk] = true
			if _, err := os.Stat(r.Src); err != nil {
				continue
			}
			sources = append(sources, source{oldChk: r.Chk, src: r.Src})
		}
	}

	out := make(map[string]string, len(sources))
	for _, s := range sources {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}
		recomputedOld, err := hashengine.HashFile(s.src, hashEngineAlgo(oldAlgo))
		if err != nil || recomputedOld != s.oldChk {
			out[s.oldChk] = fmt.Sprintf("%s:%s", s.oldChk, oldAlgo)
			continue
		}
		newChk, err := hashengine.HashFile(s.src, hashEngineAlgo(newAlgo))
		if err != nil {
			out[s.oldChk] = fmt.Sprintf("%s:%s", s.oldChk, oldAlgo)
			continue
		}
		out[s.oldChk] = newChk
	}
	return out, nil
}

// MapHashes rewrites every record's Chk through hashMap (as built by
// BuildHashMap) and switches the catalog to newAlgo. Entries tagged
// "<oldchk>:<algo>" (unverifiable) are left untouched, along with any
// checksum missing from hashMap entirely. Derived indices are rebuilt
// afterward.
func MapHashes(c *Catalog, hashMap map[string]string, newAlgo HashAlgorithm) (rewritten, skipped int) {
	for _, list := range c.PhotoDB {
		for _, r := range list {
			newChk, ok := hashMap[r.Chk]
			if !ok {
				skipped++
				continue
			}
			if isUnverifiedTag(newChk, r.Chk) {
				skipped++
				continue
			}
			r.Chk = newChk
			rewritten++
		}
	}
	c.HashAlgorithm = newAlgo
	c.RebuildIndices()
	return rewritten, skipped
}

func isUnverifiedTag(mapped, oldChk string) bool {
	return len(mapped) > len(oldChk) && mapped[:len(oldChk)] == oldChk && mapped[len(oldChk)] == ':'
}
