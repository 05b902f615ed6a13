package models

// ContentRoot lists the module-relative directories of each content category.
// A category may hold no entry (absent) or several (non-standard layouts).
type ContentRoot struct {
	SourceRoot       []string `json:"source_root" yaml:"source_root" toml:"source_root"`
	ResourceRoot     []string `json:"resource_root" yaml:"resource_root" toml:"resource_root"`
	TestSourceRoot   []string `json:"test_source_root" yaml:"test_source_root" toml:"test_source_root"`
	TestResourceRoot []string `json:"test_resource_root" yaml:"test_resource_root" toml:"test_resource_root"`
}

// Module is one node of the discovered hierarchy.
type Module struct {
	// Name is the module directory name
	Name string `json:"name" yaml:"name" toml:"name"`

	// Path is the module directory
	Path string `json:"path" yaml:"path" toml:"path"`

	// ID holds build coordinates when the descriptor declares them
	// (groupId:artifactId for maven, the module path for go).
	ID string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`

	ContentRoot ContentRoot `json:"content_root" yaml:"content_root" toml:"content_root"`

	// SubModules keeps the declaration order of the descriptor
	SubModules []*Module `json:"sub_modules" yaml:"sub_modules" toml:"sub_modules"`
}

// NewModule creates a Module without sub-modules.
func NewModule(name, path string, contentRoot ContentRoot) *Module {
	return &Module{
		Name:        name,
		Path:        path,
		ContentRoot: contentRoot,
		SubModules:  []*Module{},
	}
}

// Walk visits m and its descendants depth first in declaration order.
// Returning false from fn stops descending below the current module.
func (m *Module) Walk(fn func(module *Module, depth int) bool) {
	m.walk(fn, 0)
}

func (m *Module) walk(fn func(*Module, int) bool, depth int) {
	if !fn(m, depth) {
		return
	}
	for _, sub := range m.SubModules {
		sub.walk(fn, depth+1)
	}
}

// SubModuleNames returns the names of the direct sub-modules in order.
func (m *Module) SubModuleNames() []string {
	names := make([]string, len(m.SubModules))
	for i, sub := range m.SubModules {
		names[i] = sub.Name
	}
	return names
}
