package catalogio

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var numericSuffixRe = regexp.MustCompile(`_(\d+)$`)

// splitNameSuffixes separates a path into its directory, its base name up
// to (not including) the first dot, and the remaining compound suffixes
// (e.g. "catalog.json.gz" -> "catalog", ".json.gz").
func splitNameSuffixes(path string) (dir, base, suffixes string) {
	dir = filepath.Dir(path)
	name := filepath.Base(path)
	idx := strings.IndexByte(name, '.')
	if idx < 0 {
		return dir, name, ""
	}
	return dir, name[:idx], name[idx:]
}

// rotateWrite implements §4.4's safe-write discipline. With overwrite=true,
// or when path does not yet exist, data is written directly. Otherwise:
//  1. Compute a suffix from path's mtime and try renaming path to
//     path-with-suffix, preserving compound suffixes.
//  2. If the rename fails, derive an incrementing numeric suffix (either by
//     incrementing an existing "_<int>" suffix on the base name, or by
//     scanning siblings for the highest used integer) and write the fresh
//     bytes to that new path, leaving the original path completely
//     untouched.
//  3. Otherwise write the fresh bytes to path.
func rotateWrite(path string, data []byte, overwrite bool) error {
	if overwrite {
		return atomicWriteFile(path, data)
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return atomicWriteFile(path, data)
	}
	if err != nil {
		return fmt.Errorf("catalogio: stat %s: %w", path, err)
	}

	dir, base, suffixes := splitNameSuffixes(path)
	mtimeSuffix := info.ModTime().Format("_2006-01-02_15-04-05")
	rotated := filepath.Join(dir, base+mtimeSuffix+suffixes)
	if err := os.Rename(path, rotated); err == nil {
		return atomicWriteFile(path, data)
	}

	newPath, err := nextNumericSuffixPath(dir, base, suffixes)
	if err != nil {
		return err
	}
	return atomicWriteFile(newPath, data)
}

func nextNumericSuffixPath(dir, base, suffixes string) (string, error) {
	if m := numericSuffixRe.FindStringSubmatch(base); m != nil {
		n, _ := strconv.Atoi(m[1])
		trimmed := base[:len(base)-len(m[0])]
		return filepath.Join(dir, fmt.Sprintf("%s_%d%s", trimmed, n+1, suffixes)), nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("catalogio: read dir %s: %w", dir, err)
	}
	prefix := base + "_"
	highest := 0
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, suffixes) {
			continue
		}
		trimmed := strings.TrimSuffix(name, suffixes)
		if !strings.HasPrefix(trimmed, prefix) {
			continue
		}
		if n, err := strconv.Atoi(trimmed[len(prefix):]); err == nil && n > highest {
			highest = n
		}
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, highest+1, suffixes)), nil
}

// atomicWriteFile writes data to a temp file beside path and renames it
// into place, so readers never observe a partially written catalog.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".catalog-*.tmp")
	if err != nil {
		return fmt.Errorf("catalogio: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("catalogio: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("catalogio: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("catalogio: rename into place: %w", err)
	}
	return nil
}

// commandTimestamp formats now as the "YYYY-MM-DD_HH-MM-SS±HHMM"
// command_history key format.
func commandTimestamp(now time.Time) string {
	return now.Format("2006-01-02_15-04-05-0700")
}
