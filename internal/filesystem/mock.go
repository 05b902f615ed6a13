package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var errNotDir = errors.New("not a directory")

// MockFileSystem is an in-memory FileSystem for tests.
type MockFileSystem struct {
	nodes      map[string]*mockNode
	currentDir string
}

type mockNode struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

func (n *mockNode) isDir() bool { return n.mode.IsDir() }

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name string
	node *mockNode
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return int64(len(m.node.content)) }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.node.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.node.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.node.isDir() }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// NewMockFileSystem creates an empty MockFileSystem rooted at "/".
func NewMockFileSystem() *MockFileSystem {
	mfs := &MockFileSystem{
		nodes:      make(map[string]*mockNode),
		currentDir: "/workspace",
	}
	mfs.nodes[string(filepath.Separator)] = &mockNode{mode: 0755 | fs.ModeDir}
	return mfs
}

// AddFile adds a file and any missing parent directories.
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	mfs.nodes[cleanPath] = &mockNode{
		content: content,
		mode:    0644,
		modTime: time.Now(),
	}
	mfs.addParents(cleanPath)
}

// AddDir adds a directory and any missing parent directories.
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := filepath.Clean(path)
	if _, exists := mfs.nodes[cleanPath]; !exists {
		mfs.nodes[cleanPath] = &mockNode{
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
		}
	}
	mfs.addParents(cleanPath)
}

func (mfs *MockFileSystem) addParents(cleanPath string) {
	for dir := filepath.Dir(cleanPath); dir != "." && dir != cleanPath; dir = filepath.Dir(dir) {
		if _, exists := mfs.nodes[dir]; exists {
			return
		}
		mfs.nodes[dir] = &mockNode{mode: 0755 | fs.ModeDir, modTime: time.Now()}
		cleanPath = dir
	}
}

// SetCurrentDir sets the directory returned by Getwd.
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.currentDir = dir
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	node, exists := mfs.nodes[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if node.isDir() {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}
	return node.content, nil
}

func (mfs *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	cleanPath := filepath.Clean(path)

	node, exists := mfs.nodes[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if !node.isDir() {
		return nil, &fs.PathError{Op: "readdirent", Path: path, Err: errNotDir}
	}

	var entries []fs.DirEntry
	for p, child := range mfs.nodes {
		if p == cleanPath || filepath.Dir(p) != cleanPath {
			continue
		}
		entries = append(entries, fs.FileInfoToDirEntry(&mockFileInfo{name: filepath.Base(p), node: child}))
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	cleanPath := filepath.Clean(path)
	node, exists := mfs.nodes[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return &mockFileInfo{name: filepath.Base(cleanPath), node: node}, nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.nodes[filepath.Clean(path)]
	return exists
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

// WalkDir visits root and everything below it in lexical order, honoring
// fs.SkipDir and fs.SkipAll like filepath.WalkDir.
func (mfs *MockFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	cleanRoot := filepath.Clean(root)

	if _, exists := mfs.nodes[cleanRoot]; !exists {
		return fn(root, nil, &fs.PathError{Op: "lstat", Path: root, Err: fs.ErrNotExist})
	}

	prefix := cleanRoot + string(filepath.Separator)
	if cleanRoot == string(filepath.Separator) {
		prefix = cleanRoot
	}

	var paths []string
	for p := range mfs.nodes {
		if p == cleanRoot || strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}
	sort.Slice(paths, func(i, j int) bool {
		return walkKey(paths[i]) < walkKey(paths[j])
	})

	var skipped []string
	for _, p := range paths {
		if isSkipped(skipped, p) {
			continue
		}

		node := mfs.nodes[p]
		entry := fs.FileInfoToDirEntry(&mockFileInfo{name: filepath.Base(p), node: node})

		if err := fn(p, entry, nil); err != nil {
			switch {
			case errors.Is(err, fs.SkipAll):
				return nil
			case errors.Is(err, fs.SkipDir):
				if node.isDir() {
					skipped = append(skipped, p)
				} else {
					skipped = append(skipped, filepath.Dir(p))
				}
			default:
				return err
			}
		}
	}

	return nil
}

// walkKey orders a path so that a directory's children follow it directly,
// matching the order of filepath.WalkDir.
func walkKey(p string) string {
	return strings.ReplaceAll(p, string(filepath.Separator), "\x00")
}

func isSkipped(skipped []string, p string) bool {
	for _, dir := range skipped {
		if p == dir || strings.HasPrefix(p, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
