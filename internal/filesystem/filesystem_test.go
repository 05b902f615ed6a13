package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListFileNames_SortedNamesOnly(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddFile("/repo/pom.xml", []byte("<project/>"))
	mfs.AddFile("/repo/README.md", []byte("# repo"))
	mfs.AddDir("/repo/module1")
	mfs.AddFile("/repo/module1/pom.xml", []byte("<project/>"))

	names, err := ListFileNames(mfs, "/repo")
	require.NoError(t, err)
	require.Equal(t, []string{"README.md", "module1", "pom.xml"}, names)
}

func TestListFileNames_MissingDirectory(t *testing.T) {
	mfs := NewMockFileSystem()

	_, err := ListFileNames(mfs, "/missing")
	require.Error(t, err)
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestJoinPath(t *testing.T) {
	require.Equal(t, filepath.Join("src", "main", "java"), JoinPath("", "src", "main", "java"))
	require.Equal(t, filepath.Join("/repo", "module1"), JoinPath("/repo", "module1"))
	require.Equal(t, filepath.Join("/repo", "module1"), JoinPath("/repo", "./module1/"))
}

func TestIsWithin(t *testing.T) {
	require.True(t, IsWithin("/repo", "/repo"))
	require.True(t, IsWithin("/repo", "/repo/a/b"))
	require.False(t, IsWithin("/repo", "/other"))
	require.False(t, IsWithin("/repo", "/repo/../outside"))
	require.True(t, IsWithin("/repo", "/repo/..dots"))
}

func TestMockWalkDir_SkipDir(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddFile("/repo/a/pom.xml", nil)
	mfs.AddFile("/repo/a/child/pom.xml", nil)
	mfs.AddFile("/repo/b/pom.xml", nil)
	mfs.AddFile("/repo/a-b/pom.xml", nil)

	var visited []string
	err := mfs.WalkDir("/repo", func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		visited = append(visited, path)
		if path == "/repo/a" {
			return fs.SkipDir
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		"/repo",
		"/repo/a",
		"/repo/a-b",
		"/repo/a-b/pom.xml",
		"/repo/b",
		"/repo/b/pom.xml",
	}, visited)
}

func TestMockReadFile_Directory(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddDir("/repo")

	_, err := mfs.ReadFile("/repo")
	require.Error(t, err)

	info, err := mfs.Stat("/repo")
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.Equal(t, "repo", info.Name())
}
