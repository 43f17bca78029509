package catalogio

import (
	"fmt"
	"os"
	"time"

	"bozocatalog/internal/catalog"

	"lukechampine.com/blake3"
)

// Document binds a loaded Catalog to the file it was loaded from, tracking
// the BLAKE3 hash of its canonical compact form so Save can skip a no-op
// write.
type Document struct {
	Catalog *catalog.Catalog
	Path    string

	loadedHash    [32]byte
	hasLoadedHash bool
}

// Load reads path, unwraps its container (if any), and decodes it per the
// §4.4 loading migration.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalogio: read %s: %w", path, err)
	}
	plain, err := unwrap(path, raw)
	if err != nil {
		return nil, err
	}
	c, err := Decode(plain)
	if err != nil {
		return nil, err
	}
	compact, err := Encode(c, false)
	if err != nil {
		return nil, err
	}
	return &Document{
		Catalog:       c,
		Path:          path,
		loadedHash:    blake3.Sum256(compact),
		hasLoadedHash: true,
	}, nil
}

// New wraps a freshly created Catalog (not yet backed by any file) as a
// Document targeting path.
func New(c *catalog.Catalog, path string) *Document {
	return &Document{Catalog: c, Path: path}
}

// Save writes the document's catalog to its Path, applying the §4.4
// rotate-on-write safe-write discipline when overwrite is false. It is a
// no-op (returns wrote=false) when the canonical compact form is unchanged
// since load and force is false. On an actual write, an entry recording
// command is prepended to command_history first.
func (d *Document) Save(command string, overwrite, force bool) (wrote bool, err error) {
	compact, err := Encode(d.Catalog, false)
	if err != nil {
		return false, err
	}
	hash := blake3.Sum256(compact)
	if d.hasLoadedHash && hash == d.loadedHash && !force {
		return false, nil
	}

	d.Catalog.CommandHistory = append([]catalog.CommandHistoryEntry{
		{Timestamp: commandTimestamp(time.Now()), Command: command},
	}, d.Catalog.CommandHistory...)

	pretty, err := Encode(d.Catalog, true)
	if err != nil {
		return false, err
	}
	wrapped, err := wrap(d.Path, pretty)
	if err != nil {
		return false, err
	}
	if err := rotateWrite(d.Path, wrapped, overwrite); err != nil {
		return false, err
	}

	finalCompact, err := Encode(d.Catalog, false)
	if err != nil {
		return false, err
	}
	d.loadedHash = blake3.Sum256(finalCompact)
	d.hasLoadedHash = true
	return true, nil
}
