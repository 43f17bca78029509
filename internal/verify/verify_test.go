package verify

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bozocatalog/internal/catalog"
	"bozocatalog/internal/hashengine"
	"bozocatalog/internal/indexer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockStored(t *testing.T, root, rel, content string) string {
	t.Helper()
	abs := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o444))
	digest, err := hashengine.HashFile(abs, hashengine.SHA256)
	require.NoError(t, err)
	return digest
}

// B3: random_fraction=0 verifies nothing.
func TestVerifyZeroFractionVerifiesNothing(t *testing.T) {
	root := t.TempDir()
	chk := stockStored(t, root, "a.jpg", "hello")

	c := catalog.New(catalog.SHA256, "local")
	c.Add(&catalog.PhotoRecord{Chk: chk, Src: "/src/a.jpg", Ts: 1, Prio: 10, Sto: "a.jpg"}, "")

	results, err := Verify(context.Background(), c, root, Options{RandomFraction: 0})
	require.NoError(t, err)
	assert.Empty(t, results)
}

// B3: random_fraction=1 verifies every stored record.
func TestVerifyFullFractionVerifiesAll(t *testing.T) {
	root := t.TempDir()
	chkA := stockStored(t, root, "a.jpg", "hello")
	chkB := stockStored(t, root, "b.jpg", "world")

	c := catalog.New(catalog.SHA256, "local")
	c.Add(&catalog.PhotoRecord{Chk: chkA, Src: "/src/a.jpg", Ts: 1, Prio: 10, Sto: "a.jpg"}, "")
	c.Add(&catalog.PhotoRecord{Chk: chkB, Src: "/src/b.jpg", Ts: 2, Prio: 10, Sto: "b.jpg"}, "")

	results, err := Verify(context.Background(), c, root, Options{RandomFraction: 1})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, Correct, r.Classification)
	}
}

// S4: a bit-flip in the stored file is detected as Incorrect.
func TestVerifyDetectsCorruption(t *testing.T) {
	root := t.TempDir()
	chk := stockStored(t, root, "a.jpg", "hello")
	require.NoError(t, os.Chmod(filepath.Join(root, "a.jpg"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.jpg"), []byte("hellp"), 0o644))

	c := catalog.New(catalog.SHA256, "local")
	c.Add(&catalog.PhotoRecord{Chk: chk, Src: "/src/a.jpg", Ts: 1, Prio: 10, Sto: "a.jpg"}, "")

	results, err := Verify(context.Background(), c, root, Options{RandomFraction: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, Incorrect, results[0].Classification)
	assert.NotEqual(t, chk, results[0].ActualChk)
}

func TestVerifyMissingFileClassifiedMissing(t *testing.T) {
	root := t.TempDir()
	c := catalog.New(catalog.SHA256, "local")
	c.Add(&catalog.PhotoRecord{Chk: "deadbeef", Src: "/src/a.jpg", Ts: 1, Prio: 10, Sto: "gone.jpg"}, "")

	results, err := Verify(context.Background(), c, root, Options{RandomFraction: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, Missing, results[0].Classification)
}

func TestVerifyUsesParallelModeForSSD(t *testing.T) {
	root := t.TempDir()
	chk := stockStored(t, root, "a.jpg", "hello")
	c := catalog.New(catalog.SHA256, "local")
	c.Add(&catalog.PhotoRecord{Chk: chk, Src: "/src/a.jpg", Ts: 1, Prio: 10, Sto: "a.jpg"}, "")

	results, err := Verify(context.Background(), c, root, Options{RandomFraction: 1, StorageType: indexer.SSD})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, Correct, results[0].Classification)
}

func TestVerifyNeverMutatesCatalog(t *testing.T) {
	root := t.TempDir()
	chk := stockStored(t, root, "a.jpg", "hello")
	c := catalog.New(catalog.SHA256, "local")
	c.Add(&catalog.PhotoRecord{Chk: chk, Src: "/src/a.jpg", Ts: 1, Prio: 10, Sto: "a.jpg"}, "")
	snapshot := c.PhotoDB["notreal"]
	_ = snapshot

	before := c.Stats()
	_, err := Verify(context.Background(), c, root, Options{RandomFraction: 1})
	require.NoError(t, err)
	after := c.Stats()
	assert.Equal(t, before, after)
}
