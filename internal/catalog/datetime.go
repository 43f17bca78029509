package catalog

import (
	"fmt"
	"strconv"
	"time"
)

// datetimeLayout pairs a Go reference-time layout with whether that layout
// carries an explicit timezone offset.
type datetimeLayout struct {
	layout string
	hasTZ  bool
}

// grammar is the ordered cascade of §4.2: tried in order, first match wins.
var grammar = []datetimeLayout{
	{"2006:01:02 15:04:05.999999999-0700", true},
	{"2006:01:02 15:04:05.999999999-07:00", true},
	{"2006:01:02 15:04:05.999999999", false},
	{"2006:01:02 15:04:05-0700", true},
	{"2006:01:02 15:04:05-07:00", true},
	{"2006:01:02 15:04:05", false},
	{"2006:01:02 15:04-0700", true},
	{"2006:01:02 15:04-07:00", true},
	{"2006:01:02 15:04", false},
}

// ParseDatetime parses a metadata-engine datetime string per the §4.2
// grammar, producing a POSIX timestamp ts (with sub-second precision when
// present) and a timezone offset tzo in seconds east of UTC. If the string
// has no timezone info, tzDefault resolves it: "local" attaches the local
// system offset and leaves tzo nil (ts is still the correct UTC instant);
// any other value must be a fixed "±HHMM" offset string, converted to
// seconds east of UTC and attached as tzo.
//
// Returns ErrParseError wrapped with the offending string if no layout in
// the grammar matches.
func ParseDatetime(s string, tzDefault string) (ts float64, tzo *int, err error) {
	for _, dl := range grammar {
		t, perr := time.Parse(dl.layout, s)
		if perr != nil {
			continue
		}
		if dl.hasTZ {
			_, offset := t.Zone()
			off := offset
			return float64(t.UnixNano()) / 1e9, &off, nil
		}
		return resolveNaive(t, tzDefault)
	}
	return 0, nil, fmt.Errorf("%w: %q", ErrParseError, s)
}

// resolveNaive applies the open-question resolution of §9: a naive
// timestamp under timezone_default == "local" keeps tzo nil, with ts the UTC
// timestamp of the local interpretation; otherwise tzDefault must be a fixed
// "±HHMM" offset and tzo carries it explicitly.
func resolveNaive(t time.Time, tzDefault string) (float64, *int, error) {
	if tzDefault == "local" || tzDefault == "" {
		local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
		return float64(local.UnixNano()) / 1e9, nil, nil
	}
	offsetSeconds, err := parseFixedOffset(tzDefault)
	if err != nil {
		return 0, nil, err
	}
	fixed := time.FixedZone("", offsetSeconds)
	at := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), fixed)
	off := offsetSeconds
	return float64(at.UnixNano()) / 1e9, &off, nil
}

// parseFixedOffset parses a "±HHMM" timezone_default string into seconds
// east of UTC.
func parseFixedOffset(s string) (int, error) {
	if len(s) != 5 || (s[0] != '+' && s[0] != '-') {
		return 0, fmt.Errorf("%w: invalid timezone_default %q", ErrParseError, s)
	}
	hh, err := strconv.Atoi(s[1:3])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid timezone_default %q", ErrParseError, s)
	}
	mm, err := strconv.Atoi(s[3:5])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid timezone_default %q", ErrParseError, s)
	}
	total := hh*3600 + mm*60
	if s[0] == '-' {
		total = -total
	}
	return total, nil
}

// LocalDatetime returns the wall-clock time a record's ts/tzo pair denotes:
// fromtimestamp(ts) shifted by tzo if present, else the local system
// interpretation. Used by the collection planner to derive canonical target
// paths.
func LocalDatetime(ts float64, tzo *int) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	if tzo != nil {
		loc := time.FixedZone("", *tzo)
		return time.Unix(sec, nsec).In(loc)
	}
	return time.Unix(sec, nsec).In(time.Local)
}
