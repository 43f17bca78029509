// Package hashengine computes content digests of files, batched across
// parallel or sequential worker pools depending on the backing storage.
package hashengine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/minio/blake2b-simd"
	"lukechampine.com/blake3"
)

// Algorithm identifies a content-digest family. The enum is closed: there is
// no dynamic registration of new algorithms at runtime.
type Algorithm string

const (
	SHA256    Algorithm = "sha256"
	Blake2b256 Algorithm = "blake2b-256"
	Blake3    Algorithm = "blake3"
)

// ErrUnsupportedAlgorithm is returned when algo is not one of the closed enum values.
var ErrUnsupportedAlgorithm = fmt.Errorf("hashengine: unsupported algorithm")

// HexLength returns the expected hex-encoded digest length for algo, or 0 if
// algo is not recognized.
func (a Algorithm) HexLength() int {
	switch a {
	case SHA256, Blake2b256, Blake3:
		return 64
	default:
		return 0
	}
}

func newHasher(algo Algorithm) (hash.Hash, error) {
	switch algo {
	case SHA256:
		return sha256.New(), nil
	case Blake2b256:
		return blake2b.New256()
	case Blake3:
		return blake3.New(32, nil), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algo)
	}
}

// blockSize returns the streaming read block size for algo: 16 MiB for
// BLAKE3 (which benefits from large blocks for its internal tree hashing),
// 64 KiB for the others.
func blockSize(algo Algorithm) int {
	if algo == Blake3 {
		return 16 * 1024 * 1024
	}
	return 64 * 1024
}

// Mode selects how HashMany schedules work across files.
type Mode int

const (
	// Parallel runs up to NumWorkers concurrent file reads. Appropriate for
	// SSD/RAID backing stores.
	Parallel Mode = iota
	// Sequential reads one file at a time. Required for spinning disks to
	// avoid seek thrashing.
	Sequential
)

// HashFile streams path in fixed blocks and returns its hex-encoded digest
// under algo. Returns a wrapped IoError-class error if the file cannot be
// opened or read, or ErrUnsupportedAlgorithm if algo is unrecognized.
func HashFile(path string, algo Algorithm) (string, error) {
	h, err := newHasher(algo)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hashengine: open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, blockSize(algo))
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hashengine: read %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Options configures HashMany.
type Options struct {
	Mode       Mode
	NumWorkers int // 0 means runtime.NumCPU()
}

// HashMany hashes every path in paths under algo, scheduled per opts.Mode.
// The returned map omits entries for paths that failed to open or hash;
// callers infer missing files from the set difference against the input.
// There is no ordering guarantee among completions. Cancelling ctx abandons
// in-flight hashes; the returned map contains only entries completed before
// cancellation.
func HashMany(ctx context.Context, paths []string, algo Algorithm, opts Options) (map[string]string, error) {
	if _, err := newHasher(algo); err != nil {
		return nil, err
	}
	if opts.Mode == Sequential {
		return hashSequential(ctx, paths, algo), nil
	}
	return hashParallel(ctx, paths, algo, opts.NumWorkers), nil
}

func hashSequential(ctx context.Context, paths []string, algo Algorithm) map[string]string {
	out := make(map[string]string, len(paths))
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return out
		default:
		}
		digest, err := HashFile(p, algo)
		if err != nil {
			continue
		}
		out[p] = digest
	}
	return out
}

func hashParallel(ctx context.Context, paths []string, algo Algorithm, numWorkers int) map[string]string {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(paths) && len(paths) > 0 {
		numWorkers = len(paths)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	type result struct {
		path   string
		digest string
		ok     bool
	}

	jobs := make(chan string, numWorkers*2)
	results := make(chan result, numWorkers*2)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				digest, err := HashFile(path, algo)
				r := result{path: path, digest: digest, ok: err == nil}
				select {
				case results <- r:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, p := range paths {
			select {
			case jobs <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make(map[string]string, len(paths))
	for r := range results {
		if r.ok {
			out[r.path] = r.digest
		}
	}
	return out
}
