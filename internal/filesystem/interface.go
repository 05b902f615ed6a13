package filesystem

import (
	"io/fs"
)

// FileSystem is the read-only view of the disk the analyzers work against.
// Keeping it behind an interface lets tests describe project trees in memory.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	ReadDir(path string) ([]fs.DirEntry, error)

	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
	Getwd() (string, error)

	WalkDir(root string, fn fs.WalkDirFunc) error
}
