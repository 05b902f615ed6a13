package analyzer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/go-psa/internal/buildsystem"
	"github.com/jakoblorz/go-psa/internal/filesystem"
	"github.com/jakoblorz/go-psa/internal/models"
)

// ModuleAnalyzer knows how to analyze the modules of one build system.
type ModuleAnalyzer interface {
	// IsRelated reports whether this analyzer governs the project.
	IsRelated(project *models.Project) bool

	// Analyze builds the module at modulePath, including its sub-modules.
	// It returns (nil, nil) when modulePath is not a module of this build system.
	Analyze(ctx context.Context, projectPath, modulePath string) (*models.Module, error)
}

// ProjectStructureAnalyzer turns a project directory into a Project tree.
type ProjectStructureAnalyzer interface {
	Name() string
	IsRelated(projectPath string) bool
	Analyze(ctx context.Context, projectPath string) (*models.Project, error)
}

// ProjectAnalyzer detects the build system of a project root and hands the
// root to the first related module analyzer.
type ProjectAnalyzer struct {
	name      string
	fs        filesystem.FileSystem
	detector  *buildsystem.Detector
	analyzers []ModuleAnalyzer
	logger    *log.Logger
}

var _ ProjectStructureAnalyzer = (*ProjectAnalyzer)(nil)

// Option configures a ProjectAnalyzer.
type Option func(*ProjectAnalyzer)

// WithLogger sets the logger; by default nothing is logged.
func WithLogger(logger *log.Logger) Option {
	return func(a *ProjectAnalyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates a ProjectAnalyzer. Module analyzers are consulted in the given
// order and the first related one wins.
func New(name string, fs filesystem.FileSystem, detector *buildsystem.Detector, analyzers []ModuleAnalyzer, options ...Option) *ProjectAnalyzer {
	a := &ProjectAnalyzer{
		name:      name,
		fs:        fs,
		detector:  detector,
		analyzers: append([]ModuleAnalyzer(nil), analyzers...),
		logger:    log.New(io.Discard),
	}

	for _, option := range options {
		option(a)
	}

	return a
}

// Name returns the label of the analyzer, e.g. "jvm".
func (a *ProjectAnalyzer) Name() string {
	return a.name
}

// IsRelated reports whether a marker file sits directly under projectPath.
func (a *ProjectAnalyzer) IsRelated(projectPath string) bool {
	names, err := filesystem.ListFileNames(a.fs, projectPath)
	if err != nil {
		return false
	}
	_, found := a.detector.Detect(names)
	return found
}

// Detect classifies projectPath by its marker file without analyzing modules.
func (a *ProjectAnalyzer) Detect(projectPath string) (buildsystem.Marker, error) {
	projectPath, err := a.absPath(projectPath)
	if err != nil {
		return buildsystem.Marker{}, err
	}
	if _, err := a.projectName(projectPath); err != nil {
		return buildsystem.Marker{}, err
	}

	buildFile, err := a.buildFile(projectPath)
	if err != nil {
		return buildsystem.Marker{}, err
	}

	return buildsystem.Marker{FileName: buildFile, Type: a.detector.Classify(buildFile)}, nil
}

// Analyze builds the Project for projectPath.
func (a *ProjectAnalyzer) Analyze(ctx context.Context, projectPath string) (*models.Project, error) {
	projectPath, err := a.absPath(projectPath)
	if err != nil {
		return nil, err
	}

	name, err := a.projectName(projectPath)
	if err != nil {
		return nil, err
	}

	buildFile, err := a.buildFile(projectPath)
	if err != nil {
		return nil, err
	}

	project := models.NewProject(name, projectPath, a.detector.Classify(buildFile), buildFile)
	a.logger.Debug("detected project", "analyzer", a.name, "project", name, "type", project.Type, "build_file", buildFile)

	module, err := a.analyzeRoot(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", projectPath, err)
	}
	if module != nil {
		project.AddModules(module)
	}

	a.logger.Info("analyzed project", "project", name, "type", project.Type, "modules", project.ModuleCount())
	return project, nil
}

// analyzeRoot asks the module analyzers in order; only the first related one
// analyzes the root, later ones are not consulted.
func (a *ProjectAnalyzer) analyzeRoot(ctx context.Context, project *models.Project) (*models.Module, error) {
	for _, moduleAnalyzer := range a.analyzers {
		if !moduleAnalyzer.IsRelated(project) {
			continue
		}
		return moduleAnalyzer.Analyze(ctx, project.AbsolutePath, project.AbsolutePath)
	}

	a.logger.Warn("no module analyzer for project type", "project", project.Name, "type", project.Type)
	return nil, nil
}

// absPath resolves a relative projectPath against the working directory of
// the filesystem.
func (a *ProjectAnalyzer) absPath(projectPath string) (string, error) {
	if filepath.IsAbs(projectPath) {
		return filepath.Clean(projectPath), nil
	}
	wd, err := a.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnrecognizedProjectPath, projectPath, err)
	}
	return filesystem.JoinPath(wd, projectPath), nil
}

func (a *ProjectAnalyzer) projectName(projectPath string) (string, error) {
	info, err := a.fs.Stat(projectPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnrecognizedProjectPath, projectPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrUnrecognizedProjectPath, projectPath)
	}

	name := filepath.Base(projectPath)
	if name == "." || name == ".." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("%w: cannot derive a name from %q", ErrUnrecognizedProjectPath, projectPath)
	}

	return name, nil
}

func (a *ProjectAnalyzer) buildFile(projectPath string) (string, error) {
	names, err := filesystem.ListFileNames(a.fs, projectPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnrecognizedProjectPath, err)
	}

	marker, found := a.detector.Detect(names)
	if !found {
		return "", fmt.Errorf("%w in %s (looked for %v)", ErrNoBuildFileFound, projectPath, a.detector.FileNames())
	}

	return marker.FileName, nil
}

// Select returns the first analyzer related to path.
func Select(path string, analyzers ...ProjectStructureAnalyzer) (ProjectStructureAnalyzer, bool) {
	for _, a := range analyzers {
		if a.IsRelated(path) {
			return a, true
		}
	}
	return nil, false
}
