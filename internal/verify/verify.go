// Package verify implements the verifier (C9): it re-hashes a sample of
// stored photos and classifies each as correct, incorrect, or missing
// relative to the catalog's recorded checksum. It never mutates the
// catalog; repair is the caller's job.
package verify

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"bozocatalog/internal/catalog"
	"bozocatalog/internal/hashengine"
	"bozocatalog/internal/indexer"
)

// Result classifies one sampled record after re-hashing.
type Result struct {
	Record    *catalog.PhotoRecord
	Classification Classification
	ActualChk string // only set when Classification == Incorrect
}

// Classification is the outcome of comparing a re-hash against Record.Chk.
type Classification int

const (
	Correct Classification = iota
	Incorrect
	Missing
)

// Options configures Verify.
type Options struct {
	// StorageType selects hashing concurrency: Parallel for SSD/RAID,
	// Sequential otherwise (§4.8).
	StorageType indexer.StorageType
	// RandomFraction in [0,1] selects what portion of stored records (under
	// Subdir) to sample without replacement. 0 verifies nothing, 1 (the
	// zero value's complement — callers must set it explicitly) verifies
	// everything.
	RandomFraction float64
	Subdir         string
}

// Verify re-hashes a sample of c's stored records under root and classifies
// each. The catalog is read-only throughout.
func Verify(ctx context.Context, c *catalog.Catalog, root string, opts Options) ([]Result, error) {
	stored, err := c.StoredPhotos(opts.Subdir)
	if err != nil {
		return nil, err
	}

	sample, err := sampleRecords(stored, opts.RandomFraction)
	if err != nil {
		return nil, err
	}
	if len(sample) == 0 {
		return nil, nil
	}

	absToRecord := make(map[string]*catalog.PhotoRecord, len(sample))
	var paths []string
	var missing []*catalog.PhotoRecord
	for _, r := range sample {
		abs := filepath.Join(root, r.Sto)
		if _, err := os.Stat(abs); err != nil {
			missing = append(missing, r)
			continue
		}
		absToRecord[abs] = r
		paths = append(paths, abs)
	}

	mode := hashengine.Sequential
	if opts.StorageType == indexer.SSD || opts.StorageType == indexer.RAID {
		mode = hashengine.Parallel
	}

	digests, err := hashengine.HashMany(ctx, paths, hashengine.Algorithm(c.HashAlgorithm), hashengine.Options{Mode: mode})
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}

	results := make([]Result, 0, len(sample))
	for _, r := range missing {
		results = append(results, Result{Record: r, Classification: Missing})
	}
	for abs, r := range absToRecord {
		digest, ok := digests[abs]
		if !ok {
			results = append(results, Result{Record: r, Classification: Missing})
			continue
		}
		if digest == r.Chk {
			results = append(results, Result{Record: r, Classification: Correct})
		} else {
			results = append(results, Result{Record: r, Classification: Incorrect, ActualChk: digest})
		}
	}
	return results, nil
}

// sampleRecords draws round(fraction*len(records)) records without
// replacement using a Fisher-Yates partial shuffle seeded from crypto/rand.
func sampleRecords(records []*catalog.PhotoRecord, fraction float64) ([]*catalog.PhotoRecord, error) {
	if fraction <= 0 {
		return nil, nil
	}
	n := len(records)
	if fraction >= 1 {
		out := make([]*catalog.PhotoRecord, n)
		copy(out, records)
		return out, nil
	}

	k := int(fraction*float64(n) + 0.5)
	if k > n {
		k = n
	}
	if k == 0 {
		return nil, nil
	}

	pool := make([]*catalog.PhotoRecord, n)
	copy(pool, records)
	for i := 0; i < k; i++ {
		j, err := randIntn(n - i)
		if err != nil {
			return nil, err
		}
		idx := i + j
		pool[i], pool[idx] = pool[idx], pool[i]
	}
	return pool[:k], nil
}

func randIntn(n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	max := big.NewInt(int64(n))
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return 0, fmt.Errorf("verify: sample: %w", err)
	}
	return int(v.Int64()), nil
}
