package main

import (
	"fmt"
	"os"
	"path/filepath"

	"bozocatalog/internal/mediatype"
)

// walkSources enumerates every media file under root, in filepath.Walk's
// lexical order. Walk errors are collected rather than aborting the scan.
// Non-media files (anything mediatype.IsMedia rejects) are skipped silently.
func walkSources(root string) ([]string, []error) {
	var files []string
	var errs []error
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			return nil
		}
		if !info.IsDir() && mediatype.IsMedia(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, errs
}
