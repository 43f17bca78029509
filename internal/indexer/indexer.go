// Package indexer implements the indexing pipeline (C6): it folds a batch
// of source paths into PhotoRecords using the hash and metadata engines,
// choosing worker concurrency from the backing storage type. It never
// mutates a Catalog itself; folding is explicit via Catalog.AddMany.
package indexer

import (
	"context"
	"errors"
	"log"
	"os"
	"runtime"

	"bozocatalog/internal/catalog"
	"bozocatalog/internal/hashengine"
	"bozocatalog/internal/metadata"
)

// StorageType drives the worker policy: SSD/RAID favor parallel hashing,
// HDD avoids concurrent seeks.
type StorageType int

const (
	SSD StorageType = iota
	RAID
	HDD
)

// workerPolicy returns (hash mode, metadata worker count) for storageType,
// per §4.5: SSD/RAID get parallel hashing and num_cpus metadata workers;
// HDD gets sequential hashing and min(4, num_cpus) metadata workers.
func workerPolicy(storageType StorageType) (hashengine.Mode, int) {
	cpus := runtime.NumCPU()
	switch storageType {
	case HDD:
		workers := cpus
		if workers > 4 {
			workers = 4
		}
		return hashengine.Sequential, workers
	default:
		return hashengine.Parallel, cpus
	}
}

// Options configures Index.
type Options struct {
	Algorithm       catalog.HashAlgorithm
	StorageType     StorageType
	Priority        int
	TimezoneDefault string
	MetadataTool    metadata.Tool
}

// Index runs the hash and metadata engines concurrently over paths (used as
// given) and returns a PhotoRecord per input path in input order.
// A nil entry signals an error for that path; the error is logged and
// processing continues (per-file errors never abort the batch).
func Index(ctx context.Context, paths []string, opts Options) []*catalog.PhotoRecord {
	if len(paths) == 0 {
		return nil
	}

	hashMode, metaWorkers := workerPolicy(opts.StorageType)

	var hashes map[string]string
	hashDone := make(chan struct{})
	go func() {
		defer close(hashDone)
		h, err := hashengine.HashMany(ctx, paths, hashengine.Algorithm(opts.Algorithm), hashengine.Options{Mode: hashMode})
		if err != nil {
			log.Printf("indexer: hash engine failed: %v", err)
			h = map[string]string{}
		}
		hashes = h
	}()

	pool := metadata.NewPool(opts.MetadataTool, metaWorkers)
	defer pool.Close()
	datetimes := pool.BestDatetimeMany(ctx, paths)
	<-hashDone

	out := make([]*catalog.PhotoRecord, len(paths))
	for i, p := range paths {
		record, err := buildRecord(p, hashes, datetimes, opts)
		if err != nil {
			log.Printf("indexer: %s: %v", p, err)
			continue
		}
		out[i] = record
	}
	return out
}

func buildRecord(path string, hashes, datetimes map[string]string, opts Options) (*catalog.PhotoRecord, error) {
	chk, ok := hashes[path]
	if !ok {
		return nil, errors.New("could not hash file")
	}
	dt, ok := datetimes[path]
	if !ok || dt == "" {
		dt = "no datetime found"
	}
	ts, tzo, err := catalog.ParseDatetime(dt, opts.TimezoneDefault)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &catalog.PhotoRecord{
		Chk:  chk,
		Src:  path,
		Dt:   dt,
		Ts:   ts,
		Fsz:  info.Size(),
		Prio: opts.Priority,
		Tzo:  tzo,
	}, nil
}
