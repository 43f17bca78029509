package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatetimeWithOffset(t *testing.T) {
	ts, tzo, err := ParseDatetime("2020:06:15 12:30:00-0500", "local")
	require.NoError(t, err)
	require.NotNil(t, tzo)
	assert.Equal(t, -5*3600, *tzo)

	want := time.Date(2020, 6, 15, 12, 30, 0, 0, time.FixedZone("", -5*3600))
	assert.InDelta(t, float64(want.Unix()), ts, 1)
}

func TestParseDatetimeWithSubSecondAndOffset(t *testing.T) {
	ts, tzo, err := ParseDatetime("2020:06:15 12:30:00.500-0500", "local")
	require.NoError(t, err)
	require.NotNil(t, tzo)
	assert.Equal(t, -5*3600, *tzo)
	assert.InDelta(t, 0.5, ts-float64(int64(ts)), 0.001)
}

func TestParseDatetimeNaiveLocal(t *testing.T) {
	ts, tzo, err := ParseDatetime("2020:06:15 12:30:00", "local")
	require.NoError(t, err)
	assert.Nil(t, tzo)
	assert.Greater(t, ts, 0.0)
}

func TestParseDatetimeNaiveFixedDefault(t *testing.T) {
	ts, tzo, err := ParseDatetime("2020:06:15 12:30", "+0530")
	require.NoError(t, err)
	require.NotNil(t, tzo)
	assert.Equal(t, 5*3600+30*60, *tzo)
	_ = ts
}

func TestParseDatetimeRejectsUnknownGrammar(t *testing.T) {
	_, _, err := ParseDatetime("not a date", "local")
	assert.ErrorIs(t, err, ErrParseError)
}

func TestParseDatetimeRejectsNoDatetimeFound(t *testing.T) {
	_, _, err := ParseDatetime("no datetime found", "local")
	assert.ErrorIs(t, err, ErrParseError)
}

func TestLocalDatetimeUsesTzoWhenPresent(t *testing.T) {
	off := -7 * 3600
	ts := float64(time.Date(2020, 3, 1, 0, 0, 0, 0, time.FixedZone("", off)).Unix())
	local := LocalDatetime(ts, &off)
	assert.Equal(t, 2020, local.Year())
	assert.Equal(t, time.March, local.Month())
	assert.Equal(t, 1, local.Day())
}
