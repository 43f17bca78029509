package catalog

import "errors"

// Sentinel errors forming the catalog's error taxonomy. Wrapped with
// fmt.Errorf("...: %w", ...) at call sites so errors.Is/errors.As work
// through any amount of context.
var (
	ErrIoError             = errors.New("catalog: io error")
	ErrUnsupportedAlgorithm = errors.New("catalog: unsupported hash algorithm")
	ErrUnsupportedVersion  = errors.New("catalog: unsupported schema version")
	ErrCorruptArchive      = errors.New("catalog: corrupt archive")
	ErrInvalidPath         = errors.New("catalog: invalid path")
	ErrParseError          = errors.New("catalog: datetime does not match grammar")
)
