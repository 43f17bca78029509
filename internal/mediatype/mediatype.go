// Package mediatype classifies files by extension and checks for the
// external tools the indexer shells out to.
package mediatype

import (
	"os/exec"
	"strings"
)

// photoExtensions are the file types the indexer considers media. Anything
// else encountered during a source walk is skipped.
var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".heic": true,
	".png":  true,
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
	".avi":  true,
}

// IsMedia reports whether path has an extension the catalog indexes.
func IsMedia(path string) bool {
	dot := strings.LastIndexByte(path, '.')
	if dot < 0 {
		return false
	}
	return photoExtensions[strings.ToLower(path[dot:])]
}

// ToolAvailable reports whether name resolves on PATH, used to preflight
// exiftool before a long index run.
func ToolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
