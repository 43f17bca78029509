//go:build windows

package diskspace

import "golang.org/x/sys/windows"

// FreeBytes returns the space available to an unprivileged user on the
// filesystem containing path.
func FreeBytes(path string) (uint64, error) {
	var freeBytesAvailable, totalBytes, totalFreeBytes uint64

	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	if err := windows.GetDiskFreeSpaceEx(pathPtr, &freeBytesAvailable, &totalBytes, &totalFreeBytes); err != nil {
		return 0, err
	}
	return freeBytesAvailable, nil
}
