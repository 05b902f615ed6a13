package gomod

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-psa/internal/analyzer"
	"github.com/jakoblorz/go-psa/internal/buildsystem"
	"github.com/jakoblorz/go-psa/internal/contentroot"
	"github.com/jakoblorz/go-psa/internal/filesystem"
	"github.com/jakoblorz/go-psa/internal/models"
	"golang.org/x/mod/modfile"
)

// ModuleAnalyzer analyzes Go modules. A go.work file turns its use
// directives into sub-modules; a plain go.mod is a leaf module.
type ModuleAnalyzer struct {
	fs   filesystem.FileSystem
	tree *analyzer.TreeBuilder
}

var _ analyzer.ModuleAnalyzer = (*ModuleAnalyzer)(nil)

// NewModuleAnalyzer creates a Go ModuleAnalyzer.
func NewModuleAnalyzer(fs filesystem.FileSystem, opts analyzer.TreeOptions) *ModuleAnalyzer {
	a := &ModuleAnalyzer{fs: fs}
	a.tree = analyzer.NewTreeBuilder(a.readDescriptor, nil, opts)
	return a
}

// IsRelated reports whether the project was classified as go.
func (a *ModuleAnalyzer) IsRelated(project *models.Project) bool {
	return project.Type == models.ProjectTypeGo
}

// Analyze builds the module at modulePath and the modules its go.work uses.
func (a *ModuleAnalyzer) Analyze(ctx context.Context, projectPath, modulePath string) (*models.Module, error) {
	return a.tree.Build(ctx, projectPath, modulePath)
}

func (a *ModuleAnalyzer) readDescriptor(_ context.Context, moduleDir string) (*analyzer.Descriptor, error) {
	workPath := filesystem.JoinPath(moduleDir, buildsystem.GoWorkFile)
	modPath := filesystem.JoinPath(moduleDir, buildsystem.GoModFile)

	hasWork := a.fs.Exists(workPath)
	hasMod := a.fs.Exists(modPath)
	if !hasWork && !hasMod {
		return nil, nil
	}

	desc := &analyzer.Descriptor{
		ContentRoot: contentroot.Derive(contentroot.Go()),
	}

	if hasMod {
		modulePath, err := a.modulePath(modPath)
		if err != nil {
			return nil, err
		}
		desc.ID = modulePath
	}

	if hasWork {
		uses, err := a.workspaceUses(workPath)
		if err != nil {
			return nil, err
		}
		desc.Modules = uses
	}

	return desc, nil
}

// modulePath returns the module path declared in go.mod.
func (a *ModuleAnalyzer) modulePath(goModPath string) (string, error) {
	data, err := a.fs.ReadFile(goModPath)
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}

	modFile, err := modfile.Parse(goModPath, data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse go.mod: %w", err)
	}

	if modFile.Module == nil {
		return "", nil
	}
	return modFile.Module.Mod.Path, nil
}

// workspaceUses returns the use directives of go.work in file order,
// leaving out the workspace directory itself.
func (a *ModuleAnalyzer) workspaceUses(goWorkPath string) ([]string, error) {
	data, err := a.fs.ReadFile(goWorkPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read go.work: %w", err)
	}

	workFile, err := modfile.ParseWork(goWorkPath, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.work: %w", err)
	}

	var uses []string
	for _, use := range workFile.Use {
		if filepath.Clean(filepath.FromSlash(use.Path)) == "." {
			continue
		}
		uses = append(uses, filepath.FromSlash(use.Path))
	}

	return uses, nil
}
