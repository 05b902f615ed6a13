package maven

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-psa/internal/analyzer"
	"github.com/jakoblorz/go-psa/internal/buildsystem"
	"github.com/jakoblorz/go-psa/internal/contentroot"
	"github.com/jakoblorz/go-psa/internal/filesystem"
	"github.com/jakoblorz/go-psa/internal/models"
)

// Options configure the Maven module analyzer.
type Options struct {
	// Language is the source directory below src/main and src/test; "java" when empty
	Language string
	// IncludeProfiles also follows modules declared inside build profiles
	IncludeProfiles bool
	Tree            analyzer.TreeOptions
}

// DefaultOptions returns the standard Java layout with unresolved modules skipped.
func DefaultOptions() Options {
	return Options{
		Language: contentroot.DefaultMavenLanguage,
		Tree:     analyzer.DefaultTreeOptions(),
	}
}

// ModuleAnalyzer analyzes Maven modules by following <modules> declarations.
type ModuleAnalyzer struct {
	fs   filesystem.FileSystem
	opts Options
	tree *analyzer.TreeBuilder
}

var _ analyzer.ModuleAnalyzer = (*ModuleAnalyzer)(nil)

// NewModuleAnalyzer creates a Maven ModuleAnalyzer.
func NewModuleAnalyzer(fs filesystem.FileSystem, opts Options) *ModuleAnalyzer {
	m := &ModuleAnalyzer{fs: fs, opts: opts}
	m.tree = analyzer.NewTreeBuilder(m.readDescriptor, resolveEntry, opts.Tree)
	return m
}

// IsRelated reports whether the project was classified as maven.
func (m *ModuleAnalyzer) IsRelated(project *models.Project) bool {
	return project.Type == models.ProjectTypeMaven
}

// Analyze builds the module at modulePath and recurses into its declared modules.
func (m *ModuleAnalyzer) Analyze(ctx context.Context, projectPath, modulePath string) (*models.Module, error) {
	return m.tree.Build(ctx, projectPath, modulePath)
}

func (m *ModuleAnalyzer) readDescriptor(_ context.Context, moduleDir string) (*analyzer.Descriptor, error) {
	pomPath := filesystem.JoinPath(moduleDir, buildsystem.MavenFile)
	if !m.fs.Exists(pomPath) {
		return nil, nil
	}

	data, err := m.fs.ReadFile(pomPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", pomPath, err)
	}

	p, err := parsePOM(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pomPath, err)
	}

	return &analyzer.Descriptor{
		ID:          p.coordinates(),
		ContentRoot: m.contentRoot(moduleDir, p),
		Modules:     p.moduleEntries(m.opts.IncludeProfiles),
	}, nil
}

// contentRoot derives the standard layout and applies the directory
// overrides declared in <build>.
func (m *ModuleAnalyzer) contentRoot(moduleDir string, p *pom) models.ContentRoot {
	root := contentroot.Derive(contentroot.Maven(m.opts.Language))

	if dir := strings.TrimSpace(p.Build.SourceDirectory); dir != "" {
		root.SourceRoot = []string{relativeDir(moduleDir, dir)}
	}
	if dir := strings.TrimSpace(p.Build.TestSourceDirectory); dir != "" {
		root.TestSourceRoot = []string{relativeDir(moduleDir, dir)}
	}
	if dirs := relativeDirs(moduleDir, p.Build.Resources); len(dirs) > 0 {
		root.ResourceRoot = dirs
	}
	if dirs := relativeDirs(moduleDir, p.Build.TestResources); len(dirs) > 0 {
		root.TestResourceRoot = dirs
	}

	return root
}

func relativeDirs(moduleDir string, dirs []string) []string {
	var result []string
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		result = append(result, relativeDir(moduleDir, dir))
	}
	return result
}

// resolveEntry maps a <module> entry to its directory. Entries may name the
// child pom file directly.
func resolveEntry(moduleDir, entry string) string {
	path := analyzer.ResolveEntry(moduleDir, filepath.FromSlash(strings.TrimSpace(entry)))
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return filepath.Dir(path)
	}
	return path
}
