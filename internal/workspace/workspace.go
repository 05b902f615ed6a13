package workspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	gitignore "github.com/denormal/go-gitignore"
	"github.com/jakoblorz/go-psa/internal/analyzer"
	"github.com/jakoblorz/go-psa/internal/filesystem"
	"github.com/jakoblorz/go-psa/internal/models"
)

// DefaultIgnoredDirs are never descended into while scanning.
var DefaultIgnoredDirs = []string{
	".git", ".svn", ".hg",
	".idea", ".vscode", ".gradle",
	"node_modules", "vendor",
	"target", "build", "out", "dist",
}

// Workspace locates and scans projects below a directory using an ordered
// list of project structure analyzers.
type Workspace struct {
	fs           filesystem.FileSystem
	analyzers    []analyzer.ProjectStructureAnalyzer
	ignoredDirs  map[string]struct{}
	patterns     []string
	useGitIgnore bool
	logger       *log.Logger
}

// Option configures workspace behavior.
type Option func(*Workspace)

// WithIgnoredDirs adds directory names skipped while scanning.
func WithIgnoredDirs(names ...string) Option {
	return func(w *Workspace) {
		for _, name := range names {
			w.ignoredDirs[name] = struct{}{}
		}
	}
}

// WithIgnorePatterns skips directories whose name or root-relative path
// matches one of the doublestar globs, e.g. "**/generated" or "tmp-*".
func WithIgnorePatterns(patterns ...string) Option {
	return func(w *Workspace) {
		w.patterns = append(w.patterns, patterns...)
	}
}

// WithGitIgnore toggles honoring the scan root's .gitignore (enabled by default).
func WithGitIgnore(enabled bool) Option {
	return func(w *Workspace) {
		w.useGitIgnore = enabled
	}
}

// WithLogger sets the logger used for scan progress and skipped projects.
func WithLogger(logger *log.Logger) Option {
	return func(w *Workspace) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a new Workspace. Analyzers are tried in order for every directory.
func New(fs filesystem.FileSystem, analyzers []analyzer.ProjectStructureAnalyzer, options ...Option) *Workspace {
	w := &Workspace{
		fs:           fs,
		analyzers:    append([]analyzer.ProjectStructureAnalyzer(nil), analyzers...),
		ignoredDirs:  make(map[string]struct{}),
		useGitIgnore: true,
		logger:       log.New(io.Discard),
	}

	for _, name := range DefaultIgnoredDirs {
		w.ignoredDirs[name] = struct{}{}
	}

	for _, option := range options {
		option(w)
	}

	return w
}

// FindRoot walks up from start (the working directory when empty) to the
// nearest directory one of the analyzers recognizes.
func (w *Workspace) FindRoot(start string) (string, error) {
	if start == "" {
		cwd, err := w.fs.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		start = cwd
	}

	root, found := findRootUp(start, w.isProjectRoot)
	if !found {
		return "", fmt.Errorf("%w in %s or any parent directory", analyzer.ErrNoBuildFileFound, start)
	}

	return root, nil
}

// Analyze analyzes path with the first related analyzer.
func (w *Workspace) Analyze(ctx context.Context, path string) (*models.Project, error) {
	info, err := w.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", analyzer.ErrUnrecognizedProjectPath, path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", analyzer.ErrUnrecognizedProjectPath, path)
	}

	a, ok := analyzer.Select(path, w.analyzers...)
	if !ok {
		return nil, fmt.Errorf("%w in %s", analyzer.ErrNoBuildFileFound, path)
	}

	w.logger.Debug("selected analyzer", "analyzer", a.Name(), "path", path)
	return a.Analyze(ctx, path)
}

// Scan finds every project below root and analyzes it. Directories of a
// found project are not searched for further projects. Projects failing
// analysis are left out of the result and reported in the joined error; every
// returned project is complete. The project list is nil only when the walk
// itself failed.
func (w *Workspace) Scan(ctx context.Context, root string) ([]*models.Project, error) {
	root = filepath.Clean(root)

	var ignore gitignore.GitIgnore
	if w.useGitIgnore {
		var err error
		if ignore, err = w.loadRootGitIgnore(root); err != nil {
			return nil, err
		}
	}

	projects := []*models.Project{}
	var failures []error

	walkErr := w.fs.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			w.logger.Warn("skipping unreadable directory", "path", path, "err", walkErr)
			return filepath.SkipDir
		}
		if !entry.IsDir() {
			return nil
		}

		if path != root && w.isIgnored(root, path, entry, ignore) {
			return filepath.SkipDir
		}

		a, ok := analyzer.Select(path, w.analyzers...)
		if !ok {
			return nil
		}

		project, err := a.Analyze(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			w.logger.Warn("failed to analyze project", "path", path, "err", err)
			failures = append(failures, err)
			return filepath.SkipDir
		}

		w.logger.Debug("found project", "analyzer", a.Name(), "path", path)
		projects = append(projects, project)
		return filepath.SkipDir
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, walkErr)
	}

	return projects, errors.Join(failures...)
}

func (w *Workspace) isProjectRoot(dir string) bool {
	_, ok := analyzer.Select(dir, w.analyzers...)
	return ok
}

func (w *Workspace) isIgnored(root, path string, entry fs.DirEntry, ignore gitignore.GitIgnore) bool {
	if _, ok := w.ignoredDirs[entry.Name()]; ok {
		return true
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range w.patterns {
		if matchesPattern(pattern, entry.Name()) || matchesPattern(pattern, rel) {
			return true
		}
	}

	if ignore == nil {
		return false
	}
	match := ignore.Relative(rel, true)
	return match != nil && match.Ignore()
}

func (w *Workspace) loadRootGitIgnore(root string) (gitignore.GitIgnore, error) {
	ignorePath := filepath.Join(root, ".gitignore")
	if !w.fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := w.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	return gitignore.New(bytes.NewReader(data), root, nil), nil
}

func matchesPattern(pattern, name string) bool {
	matched, err := doublestar.Match(pattern, name)
	return err == nil && matched
}
