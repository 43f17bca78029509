package catalog

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"
)

// HashAlgorithm is the catalog-wide digest family, immutable for the life of
// a catalog except through an offline migration.
type HashAlgorithm string

const (
	SHA256     HashAlgorithm = "sha256"
	Blake2b256 HashAlgorithm = "blake2b-256"
	Blake3     HashAlgorithm = "blake3"
)

// HexLength returns the expected hex digest length for a, or 0 if a is not
// one of the closed enum values.
func (a HashAlgorithm) HexLength() int {
	switch a {
	case SHA256, Blake2b256, Blake3:
		return 64
	default:
		return 0
	}
}

// CurrentVersion is the schema version new catalogs are created at and
// every legacy catalog is migrated to on load.
const CurrentVersion = 3

// CommandHistoryEntry is one entry of the catalog's ordered command log.
type CommandHistoryEntry struct {
	Timestamp string // "YYYY-MM-DD_HH-MM-SS±HHMM"
	Command   string
}

// Catalog is the persistent mapping uid → ordered PhotoRecord list, plus
// ancillary indices rebuilt from photo_db on load and updated in place by
// Add. It is
// not safe for concurrent use from more than one goroutine: the public
// operations are synchronous and the catalog is touched by at most one
// logical task at a time, matching the single-writer model of §5.
type Catalog struct {
	Version         int
	HashAlgorithm   HashAlgorithm
	TimezoneDefault string
	PhotoDB         map[string][]*PhotoRecord
	CommandHistory  []CommandHistoryEntry

	chkToUID map[string]string
	tsToUIDs map[float64]map[string]struct{}
}

// New creates an empty catalog at CurrentVersion.
func New(algo HashAlgorithm, timezoneDefault string) *Catalog {
	c := &Catalog{
		Version:         CurrentVersion,
		HashAlgorithm:   algo,
		TimezoneDefault: timezoneDefault,
		PhotoDB:         make(map[string][]*PhotoRecord),
	}
	c.RebuildIndices()
	return c
}

// RebuildIndices recomputes chk→uid and ts→uids from PhotoDB. Called after
// load and whenever PhotoDB is mutated outside of Add/AddMany (e.g. after
// migration rewrites chk values).
func (c *Catalog) RebuildIndices() {
	c.chkToUID = make(map[string]string)
	c.tsToUIDs = make(map[float64]map[string]struct{})
	for uid, records := range c.PhotoDB {
		for _, r := range records {
			c.chkToUID[r.Chk] = uid
			c.indexTS(uid, r.Ts)
		}
	}
}

func (c *Catalog) indexTS(uid string, ts float64) {
	set, ok := c.tsToUIDs[ts]
	if !ok {
		set = make(map[string]struct{})
		c.tsToUIDs[ts] = set
	}
	set[uid] = struct{}{}
}

// Find matches record against the catalog's identity rule: chk first, then
// ts + case-insensitive basename. Returns "" if neither matches. When more
// than one uid matches by ts+basename, the lexicographically smallest uid is
// returned (so the choice is deterministic) and a warning is logged.
func (c *Catalog) Find(record *PhotoRecord) string {
	if uid, ok := c.chkToUID[record.Chk]; ok {
		return uid
	}
	candidates, ok := c.tsToUIDs[record.Ts]
	if !ok {
		return ""
	}
	base := strings.ToLower(filepath.Base(record.Src))
	var matches []string
	for uid := range candidates {
		for _, r := range c.PhotoDB[uid] {
			if strings.ToLower(filepath.Base(r.Src)) == base {
				matches = append(matches, uid)
				break
			}
		}
	}
	if len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	if len(matches) > 1 {
		log.Printf("catalog: find: ambiguous ts+basename match for %q across uids %v, using %q", record.Src, matches, matches[0])
	}
	return matches[0]
}

// AddOutcome classifies the result of Add.
type AddOutcome int

const (
	// AddedNew means a new uid was minted for record.
	AddedNew AddOutcome = iota
	// MergedExisting means record was attached to an existing uid.
	MergedExisting
	// RejectedDuplicate means record already exists under its target uid.
	RejectedDuplicate
	// RejectedConflict means uid was given explicitly but record.Chk
	// already belongs to a different uid.
	RejectedConflict
)

// Add inserts record into the catalog, optionally pinned to uid. See §4.3
// for the full decision table. Returns the uid the record landed under (or
// was rejected from, for diagnostic purposes) and the outcome.
func (c *Catalog) Add(record *PhotoRecord, uid string) (string, AddOutcome) {
	existingUID, hasExisting := c.chkToUID[record.Chk]

	if uid != "" && hasExisting && uid != existingUID {
		return existingUID, RejectedConflict
	}

	target := uid
	outcome := AddedNew
	if target == "" {
		if hasExisting {
			target = existingUID
		} else {
			newUID, err := generateUID(func(candidate string) bool {
				_, taken := c.PhotoDB[candidate]
				return taken
			})
			if err != nil {
				log.Printf("catalog: add: %v", err)
				return "", RejectedDuplicate
			}
			target = newUID
		}
	} else if hasExisting {
		target = existingUID
	}

	if _, exists := c.PhotoDB[target]; exists {
		outcome = MergedExisting
	}

	for _, r := range c.PhotoDB[target] {
		if r.Chk == record.Chk && r.Src == record.Src {
			return target, RejectedDuplicate
		}
		if r.Src == record.Src && r.Chk != record.Chk {
			log.Printf("catalog: add: previously-indexed source %q has changed checksum (was %s, now %s)", record.Src, r.Chk, record.Chk)
		}
	}

	c.insertSorted(target, record)
	c.chkToUID[record.Chk] = target
	c.indexTS(target, record.Ts)
	return target, outcome
}

// insertSorted inserts record into uid's list, keeping it sorted by Prio
// ascending with a stable (insertion-order-preserving) tie-break.
func (c *Catalog) insertSorted(uid string, record *PhotoRecord) {
	list := c.PhotoDB[uid]
	pos := len(list)
	for i, r := range list {
		if record.Prio < r.Prio {
			pos = i
			break
		}
	}
	list = append(list, nil)
	copy(list[pos+1:], list[pos:])
	list[pos] = record
	c.PhotoDB[uid] = list
}

// AddManyStats summarizes the result of folding a batch of records.
type AddManyStats struct {
	ChangedUIDs    map[string]struct{}
	AddedNew       int
	MergedExisting int
	Skipped        int
}

// AddMany folds each record in records into the catalog via Find+Add,
// applied in iteration order. When two records compete for the same
// checksum identity, the one processed first wins.
func (c *Catalog) AddMany(records []*PhotoRecord) AddManyStats {
	stats := AddManyStats{ChangedUIDs: make(map[string]struct{})}
	for _, r := range records {
		uid := c.Find(r)
		landed, outcome := c.Add(r, uid)
		switch outcome {
		case AddedNew:
			stats.AddedNew++
			stats.ChangedUIDs[landed] = struct{}{}
		case MergedExisting:
			stats.MergedExisting++
			stats.ChangedUIDs[landed] = struct{}{}
		default:
			stats.Skipped++
		}
	}
	return stats
}

// StoredPhotos returns every record whose Sto is non-empty and lies under
// subdir (a relative path). Passing an absolute subdir is a usage error.
func (c *Catalog) StoredPhotos(subdir string) ([]*PhotoRecord, error) {
	if filepath.IsAbs(subdir) {
		return nil, fmt.Errorf("%w: StoredPhotos requires a relative subdir, got %q", ErrInvalidPath, subdir)
	}
	clean := filepath.Clean(subdir)
	var out []*PhotoRecord
	for _, list := range c.PhotoDB {
		for _, r := range list {
			if !r.Stored() {
				continue
			}
			if clean == "." || isUnder(r.Sto, clean) {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func isUnder(path, subdir string) bool {
	rel, err := filepath.Rel(subdir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Stats summarizes the catalog's current size.
type Stats struct {
	UIDCount         int
	RecordCount      int
	StoredCount      int
	TotalStoredBytes int64
}

// Stats computes aggregate counters over the whole catalog.
func (c *Catalog) Stats() Stats {
	var s Stats
	s.UIDCount = len(c.PhotoDB)
	for _, list := range c.PhotoDB {
		s.RecordCount += len(list)
		for _, r := range list {
			if r.Stored() {
				s.StoredCount++
				s.TotalStoredBytes += r.Fsz
			}
		}
	}
	return s
}
