package catalogio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"bozocatalog/internal/catalog"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
)

// wrap compresses data according to path's suffix: ".gz" gzip level 5
// streaming, ".zst" zstandard level 7 with a content checksum frame,
// anything else is passed through unmodified.
func wrap(path string, data []byte) ([]byte, error) {
	switch containerKind(path) {
	case containerGzip:
		return wrapGzip(data)
	case containerZstd:
		return wrapZstd(data)
	default:
		return data, nil
	}
}

// unwrap decompresses raw bytes read from path according to its suffix. For
// zstd, a declared frame checksum is verified against a recomputed XXH64 of
// the decompressed bytes; mismatch fails with catalog.ErrCorruptArchive.
func unwrap(path string, raw []byte) ([]byte, error) {
	switch containerKind(path) {
	case containerGzip:
		return unwrapGzip(raw)
	case containerZstd:
		return unwrapZstd(raw)
	default:
		return raw, nil
	}
}

type container int

const (
	containerNone container = iota
	containerGzip
	containerZstd
)

func containerKind(path string) container {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return containerGzip
	case ".zst":
		return containerZstd
	default:
		return containerNone
	}
}

func wrapGzip(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := pgzip.NewWriterLevel(&buf, 5)
	if err != nil {
		return nil, fmt.Errorf("catalogio: gzip writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("catalogio: gzip write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("catalogio: gzip close: %w", err)
	}
	return buf.Bytes(), nil
}

func unwrapGzip(raw []byte) ([]byte, error) {
	r, err := pgzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: gzip header: %v", catalog.ErrCorruptArchive, err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: gzip stream: %v", catalog.ErrCorruptArchive, err)
	}
	return out, nil
}

// zstdLevel7 approximates the spec's "level 7" under klauspost/compress's
// four-tier EncoderLevel enum; there is no numeric level knob in that API.
const zstdLevel7 = zstd.SpeedBestCompression

func wrapZstd(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstdLevel7), zstd.WithEncoderCRC(true))
	if err != nil {
		return nil, fmt.Errorf("catalogio: zstd writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func unwrapZstd(raw []byte) ([]byte, error) {
	var header zstd.Header
	if err := header.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: zstd header: %v", catalog.ErrCorruptArchive, err)
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderIgnoreChecksum(true))
	if err != nil {
		return nil, fmt.Errorf("catalogio: zstd reader: %w", err)
	}
	defer dec.Close()

	decompressed, err := dec.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd decode: %v", catalog.ErrCorruptArchive, err)
	}

	if header.HasCheckSum {
		if len(raw) < 4 {
			return nil, fmt.Errorf("%w: truncated zstd checksum frame", catalog.ErrCorruptArchive)
		}
		declared := binary.LittleEndian.Uint32(raw[len(raw)-4:])
		got := uint32(xxhash.Sum64(decompressed))
		if got != declared {
			return nil, fmt.Errorf("%w: zstd checksum mismatch", catalog.ErrCorruptArchive)
		}
	}
	return decompressed, nil
}
