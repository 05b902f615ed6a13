package gomod_test

import (
	"context"
	"testing"

	"github.com/jakoblorz/go-psa/internal/analyzer"
	"github.com/jakoblorz/go-psa/internal/buildsystem"
	"github.com/jakoblorz/go-psa/internal/filesystem"
	"github.com/jakoblorz/go-psa/internal/gomod"
	"github.com/jakoblorz/go-psa/internal/models"
	"github.com/jakoblorz/go-psa/internal/workspace"
	"github.com/stretchr/testify/require"
)

func newGoAnalyzer(fs filesystem.FileSystem, opts analyzer.TreeOptions) *analyzer.ProjectAnalyzer {
	return analyzer.New(
		"go",
		fs,
		buildsystem.NewDetector(buildsystem.GoMarkers...),
		[]analyzer.ModuleAnalyzer{gomod.NewModuleAnalyzer(fs, opts)},
	)
}

func TestGoModule_SingleModule(t *testing.T) {
	fs := workspace.NewProjectBuilder("/src/tool").
		AddGoModule("", "github.com/example/tool").
		AddFile("main.go", "package main\n").
		Build()

	project, err := newGoAnalyzer(fs, analyzer.DefaultTreeOptions()).Analyze(context.Background(), "/src/tool")
	require.NoError(t, err)

	require.Equal(t, models.ProjectTypeGo, project.Type)
	require.Equal(t, "go.mod", project.BuildFile)
	require.Len(t, project.Modules, 1)

	module := project.Modules[0]
	require.Equal(t, "tool", module.Name)
	require.Equal(t, "github.com/example/tool", module.ID)
	require.Empty(t, module.SubModules)
	require.Equal(t, []string{"."}, module.ContentRoot.SourceRoot)
	require.Equal(t, []string{"testdata"}, module.ContentRoot.TestResourceRoot)
	require.Empty(t, module.ContentRoot.ResourceRoot)
}

func TestGoModule_WorkspaceUses(t *testing.T) {
	fs := workspace.NewProjectBuilder("/src/mono").
		AddGoWork("", ".", "./services/api", "./libs/common").
		AddGoModule("", "github.com/example/mono").
		AddGoModule("services/api", "github.com/example/mono/services/api").
		AddGoModule("libs/common", "github.com/example/mono/libs/common").
		Build()

	project, err := newGoAnalyzer(fs, analyzer.DefaultTreeOptions()).Analyze(context.Background(), "/src/mono")
	require.NoError(t, err)

	require.Equal(t, "go.work", project.BuildFile)

	root := project.Modules[0]
	require.Equal(t, "github.com/example/mono", root.ID)
	require.Equal(t, []string{"api", "common"}, root.SubModuleNames())
	require.Equal(t, "/src/mono/services/api", root.SubModules[0].Path)
	require.Equal(t, "github.com/example/mono/libs/common", root.SubModules[1].ID)
}

func TestGoModule_WorkspaceWithoutRootModule(t *testing.T) {
	fs := workspace.NewProjectBuilder("/src/ws").
		AddGoWork("", "./a", "./b").
		AddGoModule("a", "example.com/a").
		AddGoModule("b", "example.com/b").
		Build()

	project, err := newGoAnalyzer(fs, analyzer.DefaultTreeOptions()).Analyze(context.Background(), "/src/ws")
	require.NoError(t, err)

	root := project.Modules[0]
	require.Empty(t, root.ID)
	require.Equal(t, []string{"a", "b"}, root.SubModuleNames())
}

func TestGoModule_MissingUseDirectory(t *testing.T) {
	build := func() filesystem.FileSystem {
		return workspace.NewProjectBuilder("/src/ws").
			AddGoWork("", "./gone", "./kept").
			AddGoModule("kept", "example.com/kept").
			Build()
	}

	project, err := newGoAnalyzer(build(), analyzer.DefaultTreeOptions()).Analyze(context.Background(), "/src/ws")
	require.NoError(t, err)
	require.Equal(t, []string{"kept"}, project.Modules[0].SubModuleNames())

	opts := analyzer.DefaultTreeOptions()
	opts.SkipUnresolved = false
	_, err = newGoAnalyzer(build(), opts).Analyze(context.Background(), "/src/ws")
	require.ErrorIs(t, err, analyzer.ErrUnresolvedModule)
}

func TestGoModule_UseOutsideProject(t *testing.T) {
	fs := workspace.NewProjectBuilder("/src/ws").
		AddGoWork("", "../shared").
		AddGoModule("../shared", "example.com/shared").
		Build()

	_, err := newGoAnalyzer(fs, analyzer.DefaultTreeOptions()).Analyze(context.Background(), "/src/ws")
	require.ErrorIs(t, err, analyzer.ErrMalformedModule)
}

func TestGoModule_InvalidGoMod(t *testing.T) {
	fs := workspace.NewProjectBuilder("/src/broken").
		AddFile("go.mod", "module\n\nrequire (\n").
		Build()

	_, err := newGoAnalyzer(fs, analyzer.DefaultTreeOptions()).Analyze(context.Background(), "/src/broken")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse go.mod")
}

func TestGoModule_AbsoluteUse(t *testing.T) {
	fs := workspace.NewProjectBuilder("/repo").
		AddGoWork("", "/repo/svc", "./svc").
		AddGoModule("svc", "example.com/svc").
		Build()

	project, err := newGoAnalyzer(fs, analyzer.DefaultTreeOptions()).Analyze(context.Background(), "/repo")
	require.NoError(t, err)

	root := project.Modules[0]
	require.Equal(t, []string{"svc"}, root.SubModuleNames())
	require.Equal(t, "/repo/svc", root.SubModules[0].Path)
	require.Equal(t, "example.com/svc", root.SubModules[0].ID)
}

func TestGoModule_AbsoluteUseOutsideProject(t *testing.T) {
	fs := workspace.NewProjectBuilder("/repo").
		AddGoWork("", "/shared/lib").
		Build()
	fs.AddFile("/shared/lib/go.mod", []byte("module example.com/lib\n\ngo 1.24\n"))

	_, err := newGoAnalyzer(fs, analyzer.DefaultTreeOptions()).Analyze(context.Background(), "/repo")
	require.ErrorIs(t, err, analyzer.ErrMalformedModule)

	var moduleErr *analyzer.ModuleError
	require.ErrorAs(t, err, &moduleErr)
	require.Equal(t, "/shared/lib", moduleErr.Declared)
}
