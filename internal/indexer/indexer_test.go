package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bozocatalog/internal/catalog"
	"bozocatalog/internal/hashengine"
	"bozocatalog/internal/metadata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPolicyHDDIsSequentialAndCapped(t *testing.T) {
	mode, workers := workerPolicy(HDD)
	assert.Equal(t, hashengine.Sequential, mode)
	assert.LessOrEqual(t, workers, 4)
}

func TestWorkerPolicySSDIsParallel(t *testing.T) {
	mode, _ := workerPolicy(SSD)
	assert.Equal(t, hashengine.Parallel, mode)
}

// B1: empty input returns an empty list; no subprocesses are spawned
// (asserted indirectly: Index must not block or panic with a bogus tool path).
func TestIndexEmptyInput(t *testing.T) {
	opts := Options{Algorithm: catalog.SHA256, TimezoneDefault: "local", MetadataTool: metadata.Tool{ExecPath: "/nonexistent/exiftool"}}
	got := Index(context.Background(), nil, opts)
	assert.Empty(t, got)
}

func TestBuildRecordPopulatesFields(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.jpg")
	require.NoError(t, os.WriteFile(p, []byte("data"), 0o644))

	hashes := map[string]string{p: "deadbeef"}
	datetimes := map[string]string{p: "2020:01:02 03:04:05"}
	opts := Options{TimezoneDefault: "local", Priority: 7}

	r, err := buildRecord(p, hashes, datetimes, opts)
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", r.Chk)
	assert.Equal(t, p, r.Src)
	assert.Equal(t, 7, r.Prio)
	assert.Equal(t, int64(4), r.Fsz)
}

func TestBuildRecordRejectsNoDatetimeFound(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.jpg")
	require.NoError(t, os.WriteFile(p, []byte("data"), 0o644))

	hashes := map[string]string{p: "deadbeef"}
	datetimes := map[string]string{} // nothing extracted
	opts := Options{TimezoneDefault: "local"}

	_, err := buildRecord(p, hashes, datetimes, opts)
	assert.ErrorIs(t, err, catalog.ErrParseError)
}

func TestBuildRecordMissingHashIsError(t *testing.T) {
	_, err := buildRecord("/some/path.jpg", map[string]string{}, map[string]string{}, Options{TimezoneDefault: "local"})
	assert.Error(t, err)
}
