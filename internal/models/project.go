package models

// ProjectType identifies the build system governing a project.
type ProjectType string

const (
	ProjectTypeMaven ProjectType = "maven"
	ProjectTypeGo    ProjectType = "go"

	// ProjectTypeUnknown marks a project whose marker file was found but whose
	// build system has no analyzer yet (gradle today).
	ProjectTypeUnknown ProjectType = "unknown"
)

// String returns the string representation of ProjectType
func (t ProjectType) String() string {
	return string(t)
}

// Project is the root of one analysis pass.
type Project struct {
	// Name is the final path segment of the project root
	Name string `json:"name" yaml:"name" toml:"name"`

	// AbsolutePath is the path the project was analyzed from
	AbsolutePath string `json:"absolute_path" yaml:"absolute_path" toml:"absolute_path"`

	// Type is assigned from the marker file before module discovery starts
	Type ProjectType `json:"project_type" yaml:"project_type" toml:"project_type"`

	// BuildFile is the marker file name that classified the project
	BuildFile string `json:"build_file" yaml:"build_file" toml:"build_file"`

	// Modules holds the top-level modules; at most the root module today
	Modules []*Module `json:"modules" yaml:"modules" toml:"modules"`
}

// NewProject creates a Project with no modules.
func NewProject(name, absolutePath string, projectType ProjectType, buildFile string) *Project {
	return &Project{
		Name:         name,
		AbsolutePath: absolutePath,
		Type:         projectType,
		BuildFile:    buildFile,
		Modules:      []*Module{},
	}
}

// AddModules appends top-level modules.
func (p *Project) AddModules(modules ...*Module) {
	p.Modules = append(p.Modules, modules...)
}

// ModuleCount counts every module in the tree, sub-modules included.
func (p *Project) ModuleCount() int {
	count := 0
	for _, m := range p.Modules {
		m.Walk(func(*Module, int) bool {
			count++
			return true
		})
	}
	return count
}
