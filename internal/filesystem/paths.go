package filesystem

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ListFileNames returns the names of the entries directly inside dir, sorted.
// Only names are returned, never full paths.
func ListFileNames(fsys FileSystem, dir string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

// JoinPath joins base with segments using the OS separator.
// An empty base yields a relative path, e.g. JoinPath("", "src", "main") == "src/main" on unix.
func JoinPath(base string, segments ...string) string {
	parts := make([]string, 0, len(segments)+1)
	if base != "" {
		parts = append(parts, base)
	}
	parts = append(parts, segments...)
	return filepath.Join(parts...)
}

// IsWithin reports whether path equals root or lives below it.
func IsWithin(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
