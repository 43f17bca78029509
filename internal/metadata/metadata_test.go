package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	assert.True(t, valid("2020:01:02 03:04:05"))
	assert.False(t, valid(""))
	assert.False(t, valid("0000:00:00 00:00:00"))
}

func TestBestFromTagsCascade(t *testing.T) {
	cases := []struct {
		name  string
		entry map[string]any
		want  string
	}{
		{
			name:  "composite subsec wins",
			entry: map[string]any{"Composite:SubSecDateTimeOriginal": "2020:01:01 00:00:00.123", "File:FileModifyDate": "2021:01:01 00:00:00"},
			want:  "2020:01:01 00:00:00.123",
		},
		{
			name:  "falls back to file modify date",
			entry: map[string]any{"File:FileModifyDate": "2021:01:01 00:00:00"},
			want:  "2021:01:01 00:00:00",
		},
		{
			name:  "rejects zero-prefixed candidates",
			entry: map[string]any{"Composite:SubSecDateTimeOriginal": "0000:00:00 00:00:00", "File:FileModifyDate": "2021:01:01 00:00:00"},
			want:  "2021:01:01 00:00:00",
		},
		{
			name:  "no candidates at all",
			entry: map[string]any{"EXIF:Make": "Canon"},
			want:  noDatetimeFound,
		},
		{
			name:  "exif datetime original with subsec and offset",
			entry: map[string]any{"EXIF:DateTimeOriginal": "2020:01:01 00:00:00", "EXIF:SubSecTimeOriginal": "123", "EXIF:OffsetTimeOriginal": "-05:00"},
			want:  "2020:01:01 00:00:00.123-05:00",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, bestFromTags(c.entry))
		})
	}
}

func TestParseBatch(t *testing.T) {
	raw := []byte(`[{"SourceFile":"/a.jpg","File:FileModifyDate":"2021:01:01 00:00:00"}]` + "\n{ready}\n")
	got := parseBatch(raw)
	assert.Equal(t, "2021:01:01 00:00:00", got["/a.jpg"])
}

func TestSplitBatches(t *testing.T) {
	paths := []string{"a", "b", "c", "d", "e"}
	batches := splitBatches(paths, 2)
	total := 0
	for _, b := range batches {
		total += len(b)
	}
	assert.Equal(t, len(paths), total)
}
