// Package scanner enumerates candidate video files under a root
// directory.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// videoExts is the fixed set of recognized container extensions,
// matched case-insensitively.
var videoExts = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".avi":  true,
	".flv":  true,
	".webm": true,
}

// IsVideo reports whether the path has a recognized video extension.
func IsVideo(path string) bool {
	return videoExts[strings.ToLower(filepath.Ext(path))]
}

// Scan walks root recursively and returns the absolute paths of all
// video files found. excludeDir, when non-empty, names a directory
// subtree to leave out of the walk; the batch passes its own output
// directory so produced files are never picked up as new sources.
//
// The walk is lexical, so the order is deterministic for a fixed
// filesystem state. Symlinked directories are not followed.
func Scan(root, excludeDir string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	absExclude := ""
	if excludeDir != "" {
		if absExclude, err = filepath.Abs(excludeDir); err != nil {
			return nil, fmt.Errorf("failed to resolve exclude dir %s: %w", excludeDir, err)
		}
	}

	var videos []string
	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if absExclude != "" && path == absExclude {
				return filepath.SkipDir
			}
			return nil
		}
		if IsVideo(path) {
			videos = append(videos, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan of %s failed: %w", absRoot, err)
	}

	return videos, nil
}
