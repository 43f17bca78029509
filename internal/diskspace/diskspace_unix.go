//go:build !windows

// Package diskspace reports available free space on the volume backing a
// path, used as a preflight check before copying into the store.
package diskspace

import "syscall"

// FreeBytes returns the space available to an unprivileged user on the
// filesystem containing path.
func FreeBytes(path string) (uint64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
