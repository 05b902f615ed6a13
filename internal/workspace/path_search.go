package workspace

import (
	"path/filepath"
)

// findRootUp returns the first directory, starting at startDir and moving
// towards the filesystem root, for which isRoot holds.
func findRootUp(startDir string, isRoot func(dir string) bool) (string, bool) {
	dir := filepath.Clean(startDir)

	for {
		if isRoot(dir) {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
