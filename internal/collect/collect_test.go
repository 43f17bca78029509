package collect

import (
	"os"
	"path/filepath"
	"testing"

	"bozocatalog/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSrc(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("data"), 0o644))
	return p
}

// S2: after indexing two copies of the same content at descending
// priority, collecting writes exactly one task for the higher-priority
// record and marks the lower-priority one untouched.
func TestPlanAddsNewForTopPriorityOnly(t *testing.T) {
	srcDir := t.TempDir()
	root := t.TempDir()
	srcA := writeSrc(t, srcDir, "img1.jpg")
	srcB := writeSrc(t, srcDir, "img1_copy.jpg")

	c := catalog.New(catalog.SHA256, "local")
	ts := float64(1700000000)
	uid, _ := c.Add(&catalog.PhotoRecord{Chk: "aa11111", Src: srcA, Ts: ts, Prio: 10, Fsz: 4}, "")
	c.Add(&catalog.PhotoRecord{Chk: "aa11111", Src: srcB, Ts: ts, Prio: 20, Fsz: 4}, uid)

	tasks, counters := Plan(c, root, nil)
	require.Len(t, tasks, 1)
	assert.Equal(t, 1, counters.AddedNew)
	assert.Equal(t, srcA, tasks[0].Record.Src)
	assert.NotEmpty(t, tasks[0].TargetRel)
}

func TestPlanMissesWhenSourceGone(t *testing.T) {
	root := t.TempDir()
	c := catalog.New(catalog.SHA256, "local")
	c.Add(&catalog.PhotoRecord{Chk: "bb22222", Src: "/does/not/exist.jpg", Ts: 1700000000, Prio: 10, Fsz: 4}, "")

	_, counters := Plan(c, root, nil)
	assert.Equal(t, 1, counters.Missed)
}

func TestPlanAlreadyStoredSkipsLowerPriorityDuplicate(t *testing.T) {
	srcDir := t.TempDir()
	root := t.TempDir()
	src := writeSrc(t, srcDir, "img1.jpg")

	c := catalog.New(catalog.SHA256, "local")
	top := &catalog.PhotoRecord{Chk: "cc33333", Src: src, Ts: 1700000000, Prio: 10, Fsz: 4, Sto: "x/y.jpg"}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "x"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "x/y.jpg"), []byte("data"), 0o444))
	uid, _ := c.Add(top, "")
	dup := &catalog.PhotoRecord{Chk: "cc33333", Src: src, Ts: 1700000000, Prio: 20, Fsz: 4}
	c.Add(dup, uid)

	tasks, counters := Plan(c, root, nil)
	assert.Empty(t, tasks)
	assert.Equal(t, 1, counters.AlreadyStored)
}

func TestCanonicalTargetPathFormat(t *testing.T) {
	r := &catalog.PhotoRecord{Chk: "0123456789abcdef", Src: "/orig/IMG_0001.JPG", Ts: float64(1577880645), Prio: 10}
	path := canonicalTargetPath(r)
	assert.Contains(t, path, "0123456")
	assert.Contains(t, path, "IMG_0001.JPG")
}

func TestResyncStoredNamesRenamesFile(t *testing.T) {
	root := t.TempDir()
	oldChk7 := "aaaaaaa"
	newChk := "bbbbbbbccccccc"
	relDir := filepath.Join("2020", "01-Jan")
	require.NoError(t, os.MkdirAll(filepath.Join(root, relDir), 0o755))
	oldRel := filepath.Join(relDir, "2020-01-01_00-00-00-"+oldChk7+"-img.jpg")
	require.NoError(t, os.WriteFile(filepath.Join(root, oldRel), []byte("data"), 0o444))

	c := catalog.New(catalog.SHA256, "local")
	c.Add(&catalog.PhotoRecord{Chk: newChk, Src: "/a/img.jpg", Ts: 1, Prio: 1, Sto: oldRel}, "")

	renamed, skipped, err := ResyncStoredNames(c, root)
	require.NoError(t, err)
	assert.Equal(t, 1, renamed)
	assert.Equal(t, 0, skipped)

	for _, list := range c.PhotoDB {
		for _, r := range list {
			assert.Contains(t, r.Sto, newChk[:7])
			_, err := os.Stat(filepath.Join(root, r.Sto))
			assert.NoError(t, err)
		}
	}
}
