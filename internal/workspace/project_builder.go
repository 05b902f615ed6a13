package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-psa/internal/filesystem"
)

// ProjectBuilder helps create in-memory project trees for tests
type ProjectBuilder struct {
	fs   *filesystem.MockFileSystem
	root string
}

// NewProjectBuilder creates a builder rooted at root, which is also the
// working directory of the returned filesystem.
func NewProjectBuilder(root string) *ProjectBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.SetCurrentDir(root)

	return &ProjectBuilder{
		fs:   fs,
		root: filepath.Clean(root),
	}
}

// Path returns the absolute path of rel below the root.
func (pb *ProjectBuilder) Path(rel string) string {
	return filepath.Join(pb.root, filepath.FromSlash(rel))
}

// AddMavenModule writes a pom.xml at rel declaring the given modules.
func (pb *ProjectBuilder) AddMavenModule(rel, artifactID string, modules ...string) *ProjectBuilder {
	return pb.AddFile(filepath.Join(rel, "pom.xml"), MavenPOM(artifactID, modules...))
}

// AddGradleBuild writes an empty build.gradle at rel.
func (pb *ProjectBuilder) AddGradleBuild(rel string) *ProjectBuilder {
	return pb.AddFile(filepath.Join(rel, "build.gradle"), "plugins {\n    id 'java'\n}\n")
}

// AddGoModule writes a go.mod at rel.
func (pb *ProjectBuilder) AddGoModule(rel, modulePath string) *ProjectBuilder {
	return pb.AddFile(filepath.Join(rel, "go.mod"), fmt.Sprintf("module %s\n\ngo 1.24\n", modulePath))
}

// AddGoWork writes a go.work at rel using the given directories.
func (pb *ProjectBuilder) AddGoWork(rel string, uses ...string) *ProjectBuilder {
	var b strings.Builder
	b.WriteString("go 1.24\n\nuse (\n")
	for _, use := range uses {
		fmt.Fprintf(&b, "\t%s\n", use)
	}
	b.WriteString(")\n")
	return pb.AddFile(filepath.Join(rel, "go.work"), b.String())
}

// AddDir adds an empty directory at rel.
func (pb *ProjectBuilder) AddDir(rel string) *ProjectBuilder {
	pb.fs.AddDir(pb.Path(rel))
	return pb
}

// AddFile writes content to rel.
func (pb *ProjectBuilder) AddFile(rel, content string) *ProjectBuilder {
	pb.fs.AddFile(pb.Path(rel), []byte(content))
	return pb
}

// Build returns the filesystem
func (pb *ProjectBuilder) Build() *filesystem.MockFileSystem {
	return pb.fs
}

// MavenPOM renders a minimal pom.xml with groupId com.example.
func MavenPOM(artifactID string, modules ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<project xmlns="http://maven.apache.org/POM/4.0.0">` + "\n")
	b.WriteString("  <modelVersion>4.0.0</modelVersion>\n")
	b.WriteString("  <groupId>com.example</groupId>\n")
	fmt.Fprintf(&b, "  <artifactId>%s</artifactId>\n", artifactID)
	if len(modules) > 0 {
		b.WriteString("  <packaging>pom</packaging>\n")
		b.WriteString("  <modules>\n")
		for _, m := range modules {
			fmt.Fprintf(&b, "    <module>%s</module>\n", m)
		}
		b.WriteString("  </modules>\n")
	}
	b.WriteString("</project>\n")
	return b.String()
}
