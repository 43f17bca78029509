package main

import (
	"errors"
	"fmt"
	"os"

	"bozocatalog/internal/catalog"
	"bozocatalog/internal/catalogio"
)

// openOrCreate loads the catalog at path, creating a fresh one (at algo and
// tzDefault) if the file does not yet exist.
func openOrCreate(path string, algo catalog.HashAlgorithm, tzDefault string) (*catalogio.Document, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return catalogio.New(catalog.New(algo, tzDefault), path), nil
	}
	doc, err := catalogio.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return doc, nil
}

// loadExisting loads the catalog at path, failing loudly if it does not
// exist: collect/clean/verify/stats/migrate all operate on a catalog an
// index run has already produced.
func loadExisting(path string) *catalogio.Document {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fatalf(exitOperational, "catalog %s does not exist; run 'index' first", path)
	}
	doc, err := catalogio.Load(path)
	if err != nil {
		fatalf(exitOperational, "loading catalog %s: %v", path, err)
	}
	return doc
}

func mustSave(doc *catalogio.Document, command string) {
	wrote, err := doc.Save(command, false, false)
	if err != nil {
		fatalf(exitOperational, "saving catalog: %v", err)
	}
	if wrote {
		okf("catalog saved: %s", doc.Path)
	}
}
