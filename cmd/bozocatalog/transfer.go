package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// copyIntoStore implements the copier contract of §6: copies src to absDst,
// preserving src's modification time, setting mode 0o444, and creating
// parent directories on demand. The destination is written via a same-
// directory temp file and atomic rename so a cancelled or failed copy never
// leaves a partial file at absDst.
func copyIntoStore(ctx context.Context, src, absDst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("transfer: stat %s: %w", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(absDst), 0o755); err != nil {
		return fmt.Errorf("transfer: mkdir for %s: %w", absDst, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("transfer: open %s: %w", src, err)
	}
	defer in.Close()

	tmpDst := absDst + ".tmp"
	out, err := os.Create(tmpDst)
	if err != nil {
		return fmt.Errorf("transfer: create %s: %w", tmpDst, err)
	}
	defer func() {
		out.Close()
		if ctx.Err() != nil {
			os.Remove(tmpDst)
		}
	}()

	buf := make([]byte, 1024*1024)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, readErr := in.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return fmt.Errorf("transfer: write %s: %w", tmpDst, writeErr)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("transfer: read %s: %w", src, readErr)
		}
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("transfer: sync %s: %w", tmpDst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("transfer: close %s: %w", tmpDst, err)
	}
	if ctx.Err() != nil {
		os.Remove(tmpDst)
		return ctx.Err()
	}

	if err := os.Chtimes(tmpDst, info.ModTime(), info.ModTime()); err != nil {
		fmt.Printf("transfer: warning: failed to preserve timestamp on %s: %v\n", tmpDst, err)
	}
	if err := os.Chmod(tmpDst, 0o444); err != nil {
		os.Remove(tmpDst)
		return fmt.Errorf("transfer: chmod %s: %w", tmpDst, err)
	}
	if err := os.Rename(tmpDst, absDst); err != nil {
		os.Remove(tmpDst)
		return fmt.Errorf("transfer: rename into place %s: %w", absDst, err)
	}
	return nil
}

// removeFromStore implements the remover contract of §6: deletes absPath.
func removeFromStore(absPath string) error {
	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("transfer: remove %s: %w", absPath, err)
	}
	return nil
}
