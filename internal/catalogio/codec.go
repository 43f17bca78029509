// Package catalogio implements the catalog codec: canonical JSON
// serialization, optional gzip/zstd containers, legacy schema migration,
// and the rotate-on-write safe-write discipline.
package catalogio

import (
	"fmt"

	"bozocatalog/internal/catalog"

	"github.com/goccy/go-json"
)

// longToShortFields maps the pre-v3 long PhotoRecord field names to their
// current short names, applied only at load time for catalogs below
// version 3.
var longToShortFields = map[string]string{
	"checksum":    "chk",
	"source_path": "src",
	"datetime":    "dt",
	"timestamp":   "ts",
	"file_size":   "fsz",
	"store_path":  "sto",
	"priority":    "prio",
	"tz_offset":   "tzo",
}

// wireDoc mirrors the canonical top-level key order of §4.4: version,
// hash_algorithm, timezone_default, photo_db, command_history. Struct field
// declaration order is what both encoding/json and goccy/go-json honor when
// marshaling, so this ordering is load-bearing.
type wireDoc struct {
	Version         int                           `json:"version"`
	HashAlgorithm   string                        `json:"hash_algorithm"`
	TimezoneDefault string                        `json:"timezone_default"`
	PhotoDB         map[string][]*catalog.PhotoRecord `json:"photo_db"`
	CommandHistory  map[string]string             `json:"command_history"`
}

// Decode parses raw canonical or legacy JSON bytes into a Catalog,
// performing the §4.4 loading migration: version defaults to 1 if absent,
// hash_algorithm defaults to "sha256", timezone_default defaults to
// "local"; versions below 3 have every PhotoRecord rewritten from long
// field names to short ones. A version newer than catalog.CurrentVersion
// fails with ErrUnsupportedVersion.
func Decode(raw []byte) (*catalog.Catalog, error) {
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("catalogio: decode: %w", err)
	}

	version := 1
	if v, ok := generic["version"]; ok {
		if err := json.Unmarshal(v, &version); err != nil {
			return nil, fmt.Errorf("catalogio: decode version: %w", err)
		}
	}
	if version > catalog.CurrentVersion {
		return nil, fmt.Errorf("%w: catalog version %d > current %d", catalog.ErrUnsupportedVersion, version, catalog.CurrentVersion)
	}

	hashAlgo := "sha256"
	if v, ok := generic["hash_algorithm"]; ok {
		json.Unmarshal(v, &hashAlgo)
	}
	tzDefault := "local"
	if v, ok := generic["timezone_default"]; ok {
		json.Unmarshal(v, &tzDefault)
	}

	photoDB := make(map[string][]*catalog.PhotoRecord)
	if raw, ok := generic["photo_db"]; ok {
		if version < catalog.CurrentVersion {
			var legacy map[string][]map[string]any
			if err := json.Unmarshal(raw, &legacy); err != nil {
				return nil, fmt.Errorf("catalogio: decode legacy photo_db: %w", err)
			}
			for uid, records := range legacy {
				for _, rec := range records {
					photoDB[uid] = append(photoDB[uid], recordFromLegacy(rec))
				}
			}
		} else if err := json.Unmarshal(raw, &photoDB); err != nil {
			return nil, fmt.Errorf("catalogio: decode photo_db: %w", err)
		}
	}

	history := make(map[string]string)
	if raw, ok := generic["command_history"]; ok {
		json.Unmarshal(raw, &history)
	}

	c := catalog.New(catalog.HashAlgorithm(hashAlgo), tzDefault)
	c.Version = catalog.CurrentVersion
	c.PhotoDB = photoDB
	c.CommandHistory = historyEntriesFromMap(history)
	c.RebuildIndices()
	return c, nil
}

// recordFromLegacy renames a raw legacy-field record dict onto short field
// names and builds a PhotoRecord from it. Numeric values arrive as
// float64 through generic JSON decoding.
func recordFromLegacy(rec map[string]any) *catalog.PhotoRecord {
	short := make(map[string]any, len(rec))
	for k, v := range rec {
		if mapped, ok := longToShortFields[k]; ok {
			short[mapped] = v
		} else {
			short[k] = v
		}
	}
	r := &catalog.PhotoRecord{}
	if v, ok := short["chk"].(string); ok {
		r.Chk = v
	}
	if v, ok := short["src"].(string); ok {
		r.Src = v
	}
	if v, ok := short["dt"].(string); ok {
		r.Dt = v
	}
	if v, ok := short["ts"].(float64); ok {
		r.Ts = v
	}
	if v, ok := short["fsz"].(float64); ok {
		r.Fsz = int64(v)
	}
	if v, ok := short["sto"].(string); ok {
		r.Sto = v
	}
	if v, ok := short["prio"].(float64); ok {
		r.Prio = int(v)
	}
	if v, ok := short["tzo"].(float64); ok {
		tzo := int(v)
		r.Tzo = &tzo
	}
	return r
}

func historyEntriesFromMap(m map[string]string) []catalog.CommandHistoryEntry {
	entries := make([]catalog.CommandHistoryEntry, 0, len(m))
	for ts, cmd := range m {
		entries = append(entries, catalog.CommandHistoryEntry{Timestamp: ts, Command: cmd})
	}
	// Most-recent-first, matching the in-memory prepend convention; ties
	// broken by timestamp string since the fixed-width format sorts
	// chronologically.
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].Timestamp > entries[j-1].Timestamp; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
	return entries
}

// Encode serializes c into canonical JSON: fixed top-level key order, short
// PhotoRecord field names. pretty selects 2-space-indented output for disk
// writes; non-pretty produces compact bytes for modification-detection
// hashing.
func Encode(c *catalog.Catalog, pretty bool) ([]byte, error) {
	history := make(map[string]string, len(c.CommandHistory))
	for _, e := range c.CommandHistory {
		history[e.Timestamp] = e.Command
	}
	doc := wireDoc{
		Version:         c.Version,
		HashAlgorithm:   string(c.HashAlgorithm),
		TimezoneDefault: c.TimezoneDefault,
		PhotoDB:         c.PhotoDB,
		CommandHistory:  history,
	}
	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}
