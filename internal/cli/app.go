package cli

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/go-psa/internal/analyzer"
	"github.com/jakoblorz/go-psa/internal/buildsystem"
	"github.com/jakoblorz/go-psa/internal/config"
	"github.com/jakoblorz/go-psa/internal/filesystem"
	"github.com/jakoblorz/go-psa/internal/gomod"
	"github.com/jakoblorz/go-psa/internal/logging"
	"github.com/jakoblorz/go-psa/internal/maven"
	"github.com/jakoblorz/go-psa/internal/workspace"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configFlag = "config"

// flagKeys maps persistent flags to their configuration keys.
var flagKeys = map[string]string{
	"log-level":        "log_level",
	"format":           "format",
	"skip-unresolved":  "skip_unresolved",
	"parallel":         "parallel",
	"max-depth":        "max_depth",
	"include-profiles": "include_profiles",
	"source-language":  "maven.source_language",
}

// app carries what every command needs once flags and config are resolved.
type app struct {
	fs     filesystem.FileSystem
	v      *viper.Viper
	cfg    *config.Config
	logger *log.Logger
}

func newApp(fs filesystem.FileSystem) *app {
	return &app{
		fs:     fs,
		v:      config.NewViper(),
		logger: logging.Discard(),
	}
}

func (a *app) registerFlags(cmd *cobra.Command) {
	defaults := config.DefaultConfig()

	flags := cmd.PersistentFlags()
	flags.String(configFlag, "", "Config file (default .psa.yaml in the working directory)")
	flags.String("log-level", defaults.LogLevel, "Log level: debug, info, warn, error or silent")
	flags.StringP("format", "f", defaults.Format, "Output format: text, json, yaml or toml")
	flags.Bool("skip-unresolved", defaults.SkipUnresolved, "Skip declared modules that cannot be resolved instead of failing")
	flags.Bool("parallel", defaults.Parallel, "Analyze sibling modules concurrently")
	flags.Int("max-depth", defaults.MaxDepth, "Maximum module nesting depth")
	flags.Bool("include-profiles", defaults.IncludeProfiles, "Follow modules declared in Maven profiles")
	flags.String("source-language", defaults.Maven.SourceLanguage, "Maven source directory below src/main and src/test")
}

// init loads the configuration and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	for flag, key := range flagKeys {
		if err := a.v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	configFile, _ := cmd.Flags().GetString(configFlag)

	cwd, err := a.fs.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(a.v, configFile, cwd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) treeOptions() analyzer.TreeOptions {
	return analyzer.TreeOptions{
		SkipUnresolved: a.cfg.SkipUnresolved,
		Parallel:       a.cfg.Parallel,
		MaxDepth:       a.cfg.MaxDepth,
		Logger:         a.logger,
	}
}

// analyzers returns the project analyzers in selection order: jvm, then go.
func (a *app) analyzers() []*analyzer.ProjectAnalyzer {
	mavenOpts := maven.Options{
		Language:        a.cfg.Maven.SourceLanguage,
		IncludeProfiles: a.cfg.IncludeProfiles,
		Tree:            a.treeOptions(),
	}

	jvm := analyzer.New(
		"jvm",
		a.fs,
		buildsystem.NewDetector(buildsystem.JVMMarkers...),
		[]analyzer.ModuleAnalyzer{maven.NewModuleAnalyzer(a.fs, mavenOpts)},
		analyzer.WithLogger(a.logger),
	)

	golang := analyzer.New(
		"go",
		a.fs,
		buildsystem.NewDetector(buildsystem.GoMarkers...),
		[]analyzer.ModuleAnalyzer{gomod.NewModuleAnalyzer(a.fs, a.treeOptions())},
		analyzer.WithLogger(a.logger),
	)

	return []*analyzer.ProjectAnalyzer{jvm, golang}
}

func (a *app) workspace() *workspace.Workspace {
	concrete := a.analyzers()
	analyzers := make([]analyzer.ProjectStructureAnalyzer, len(concrete))
	for i, pa := range concrete {
		analyzers[i] = pa
	}

	return workspace.New(
		a.fs,
		analyzers,
		workspace.WithIgnorePatterns(a.cfg.Scan.Ignore...),
		workspace.WithLogger(a.logger),
	)
}

// resolvePath turns the optional path argument into an absolute path,
// relative to the working directory.
func (a *app) resolvePath(args []string) (string, error) {
	path := "."
	if len(args) > 0 && args[0] != "" {
		path = args[0]
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	cwd, err := a.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(cwd, path), nil
}
