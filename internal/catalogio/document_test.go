package catalogio

import (
	"os"
	"path/filepath"
	"testing"

	"bozocatalog/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// R3: save under .gz / .zst and reload yields an equal catalog.
func TestSaveAndReloadGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json.gz")
	doc := New(sampleCatalog(), path)

	wrote, err := doc.Save("index /a /b", true, false)
	require.NoError(t, err)
	assert.True(t, wrote)

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Catalog.PhotoDB, reloaded.Catalog.PhotoDB)
}

func TestSaveAndReloadZstd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json.zst")
	doc := New(sampleCatalog(), path)

	_, err := doc.Save("index /a /b", true, false)
	require.NoError(t, err)

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Catalog.PhotoDB, reloaded.Catalog.PhotoDB)
}

func TestZstdCorruptChecksumFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json.zst")
	doc := New(sampleCatalog(), path)
	_, err := doc.Save("index", true, false)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	corrupted := append([]byte(nil), raw...)
	corrupted[len(corrupted)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(path, corrupted, 0o644))

	_, err = Load(path)
	assert.ErrorIs(t, err, catalog.ErrCorruptArchive)
}

// Save is a no-op when nothing changed and force is false.
func TestSaveNoOpWhenUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	doc := New(sampleCatalog(), path)
	wrote, err := doc.Save("first save", true, false)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = doc.Save("second save, nothing changed", true, false)
	require.NoError(t, err)
	assert.False(t, wrote)
}

// S6: rotate-on-overwrite. Saving again over an existing file with
// overwrite=false leaves the original path and produces one rotated sibling.
func TestRotateOnOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.json")

	doc := New(sampleCatalog(), path)
	_, err := doc.Save("first", true, false)
	require.NoError(t, err)

	doc.Catalog.Add(&catalog.PhotoRecord{Chk: "c3", Src: "/c/img3.jpg", Ts: 3000, Prio: 5, Fsz: 5}, "")
	wrote, err := doc.Save("second, forces rotate", false, true)
	require.NoError(t, err)
	assert.True(t, wrote)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(entries), 2)

	_, err = os.Stat(path)
	assert.NoError(t, err, "p.json must still exist after rotate")
}

func TestSplitNameSuffixes(t *testing.T) {
	dir, base, suf := splitNameSuffixes("/tmp/catalog.json.gz")
	assert.Equal(t, "/tmp", dir)
	assert.Equal(t, "catalog", base)
	assert.Equal(t, ".json.gz", suf)
}
