package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModuleWalk_DepthFirstDeclarationOrder(t *testing.T) {
	root := NewModule("root", "/repo", ContentRoot{})
	a := NewModule("a", "/repo/a", ContentRoot{})
	a.SubModules = append(a.SubModules, NewModule("a1", "/repo/a/a1", ContentRoot{}))
	b := NewModule("b", "/repo/b", ContentRoot{})
	root.SubModules = append(root.SubModules, a, b)

	var visited []string
	var depths []int
	root.Walk(func(m *Module, depth int) bool {
		visited = append(visited, m.Name)
		depths = append(depths, depth)
		return true
	})

	require.Equal(t, []string{"root", "a", "a1", "b"}, visited)
	require.Equal(t, []int{0, 1, 2, 1}, depths)
	require.Equal(t, []string{"a", "b"}, root.SubModuleNames())

	project := NewProject("repo", "/repo", ProjectTypeMaven, "pom.xml")
	require.Equal(t, 0, project.ModuleCount())
	project.AddModules(root)
	require.Equal(t, 4, project.ModuleCount())
}

func TestModuleWalk_Prune(t *testing.T) {
	root := NewModule("root", "/repo", ContentRoot{})
	a := NewModule("a", "/repo/a", ContentRoot{})
	a.SubModules = append(a.SubModules, NewModule("a1", "/repo/a/a1", ContentRoot{}))
	root.SubModules = append(root.SubModules, a)

	var visited []string
	root.Walk(func(m *Module, _ int) bool {
		visited = append(visited, m.Name)
		return m.Name != "a"
	})

	require.Equal(t, []string{"root", "a"}, visited)
}
