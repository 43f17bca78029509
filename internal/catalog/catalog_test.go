package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord(chk, src string, ts float64, prio int) *PhotoRecord {
	return &PhotoRecord{Chk: chk, Src: src, Dt: "2020:01:01 00:00:00", Ts: ts, Fsz: 100, Prio: prio}
}

func TestAddMintsNewUID(t *testing.T) {
	c := New(SHA256, "local")
	r := newTestRecord("aa", "/a/img1.jpg", 1000, 10)
	uid, outcome := c.Add(r, "")
	require.Equal(t, AddedNew, outcome)
	assert.True(t, ValidUID(uid))
	assert.Len(t, c.PhotoDB[uid], 1)
}

func TestAddSameChecksumMergesByFind(t *testing.T) {
	c := New(SHA256, "local")
	a := newTestRecord("aa", "/A/img1.jpg", 1000, 10)
	uidA, _ := c.Add(a, "")

	b := newTestRecord("aa", "/B/img1.jpg", 1000, 20)
	foundUID := c.Find(b)
	assert.Equal(t, uidA, foundUID)

	uidB, outcome := c.Add(b, foundUID)
	assert.Equal(t, uidA, uidB)
	assert.Equal(t, MergedExisting, outcome)
	assert.Len(t, c.PhotoDB[uidA], 2)
	// S1: sorted by prio ascending, A first
	assert.Equal(t, "aa", c.PhotoDB[uidA][0].Chk)
	assert.Equal(t, 10, c.PhotoDB[uidA][0].Prio)
	assert.Equal(t, 20, c.PhotoDB[uidA][1].Prio)
}

func TestAddRejectsExactDuplicate(t *testing.T) {
	c := New(SHA256, "local")
	a := newTestRecord("aa", "/a/img1.jpg", 1000, 10)
	uid, _ := c.Add(a, "")
	_, outcome := c.Add(newTestRecord("aa", "/a/img1.jpg", 1000, 10), uid)
	assert.Equal(t, RejectedDuplicate, outcome)
	assert.Len(t, c.PhotoDB[uid], 1)
}

func TestAddRejectsConflictingUID(t *testing.T) {
	c := New(SHA256, "local")
	a := newTestRecord("aa", "/a/img1.jpg", 1000, 10)
	uidA, _ := c.Add(a, "")

	other := newTestRecord("bb", "/b/img2.jpg", 2000, 10)
	uidOther, _ := c.Add(other, "")
	require.NotEqual(t, uidA, uidOther)

	// Now try to add a record with chk "aa" but explicitly pin to uidOther.
	_, outcome := c.Add(newTestRecord("aa", "/c/img3.jpg", 1000, 5), uidOther)
	assert.Equal(t, RejectedConflict, outcome)
}

func TestFindByTsAndBasenameFallback(t *testing.T) {
	c := New(SHA256, "local")
	a := newTestRecord("aa", "/orig/IMG_0001.JPG", 5000, 10)
	uidA, _ := c.Add(a, "")

	b := newTestRecord("bb", "/recompressed/img_0001.jpg", 5000, 20)
	assert.Equal(t, uidA, c.Find(b))
}

func TestFindNoMatch(t *testing.T) {
	c := New(SHA256, "local")
	c.Add(newTestRecord("aa", "/a/img1.jpg", 1000, 10), "")
	assert.Equal(t, "", c.Find(newTestRecord("zz", "/z/other.jpg", 9999, 10)))
}

func TestAddManyRejectsSecondDuplicateOnDirReindex(t *testing.T) {
	c := New(SHA256, "local")
	first := []*PhotoRecord{
		newTestRecord("aa", "/a/img1.jpg", 1000, 10),
		newTestRecord("bb", "/a/img2.jpg", 2000, 10),
	}
	stats := c.AddMany(first)
	assert.Equal(t, 2, stats.AddedNew)
	assert.Equal(t, 0, stats.Skipped)

	// R5: re-indexing the same directory at the same priority is a no-op.
	second := []*PhotoRecord{
		newTestRecord("aa", "/a/img1.jpg", 1000, 10),
		newTestRecord("bb", "/a/img2.jpg", 2000, 10),
	}
	stats2 := c.AddMany(second)
	assert.Equal(t, 0, stats2.AddedNew)
	assert.Equal(t, 0, stats2.MergedExisting)
	assert.Equal(t, 2, stats2.Skipped)
}

func TestInvariantsHoldAfterAddMany(t *testing.T) {
	c := New(SHA256, "local")
	c.AddMany([]*PhotoRecord{
		newTestRecord("aa", "/a/img1.jpg", 1000, 10),
		newTestRecord("aa", "/b/img1.jpg", 1000, 20),
		newTestRecord("bb", "/c/img2.jpg", 2000, 5),
	})

	seenChk := map[string]string{}
	for uid, list := range c.PhotoDB {
		require.NotEmpty(t, list)
		for i := 1; i < len(list); i++ {
			assert.LessOrEqual(t, list[i-1].Prio, list[i].Prio)
		}
		for _, r := range list {
			assert.Len(t, r.Chk, 2) // test fixture chk, not a real digest
			if owner, ok := seenChk[r.Chk]; ok {
				assert.Equal(t, owner, uid, "chk %s appeared under two uids", r.Chk)
			}
			seenChk[r.Chk] = uid
		}
		assert.True(t, ValidUID(uid))
	}
}

func TestStoredPhotosRejectsAbsoluteSubdir(t *testing.T) {
	c := New(SHA256, "local")
	_, err := c.StoredPhotos("/abs/path")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestStoredPhotosFiltersBySubdir(t *testing.T) {
	c := New(SHA256, "local")
	r1 := newTestRecord("aa", "/a/img1.jpg", 1000, 10)
	r1.Sto = "2020/01-Jan/file1.jpg"
	r2 := newTestRecord("bb", "/b/img2.jpg", 2000, 10)
	r2.Sto = "2021/02-Feb/file2.jpg"
	c.Add(r1, "")
	c.Add(r2, "")

	got, err := c.StoredPhotos("2020")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2020/01-Jan/file1.jpg", got[0].Sto)
}

func TestStats(t *testing.T) {
	c := New(SHA256, "local")
	r1 := newTestRecord("aa", "/a/img1.jpg", 1000, 10)
	r1.Sto = "x/y.jpg"
	r1.Fsz = 500
	c.Add(r1, "")
	c.Add(newTestRecord("bb", "/b/img2.jpg", 2000, 10), "")

	s := c.Stats()
	assert.Equal(t, 2, s.UIDCount)
	assert.Equal(t, 2, s.RecordCount)
	assert.Equal(t, 1, s.StoredCount)
	assert.Equal(t, int64(500), s.TotalStoredBytes)
}
