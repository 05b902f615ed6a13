package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jakoblorz/go-psa/internal/analyzer"
	"github.com/jakoblorz/go-psa/internal/render"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file looked up in the working directory.
	FileName = ".psa"
	// EnvPrefix prefixes environment overrides, e.g. PSA_LOG_LEVEL.
	EnvPrefix = "PSA"
)

// Config holds the settings shared by all commands.
type Config struct {
	LogLevel        string `mapstructure:"log_level"`
	Format          string `mapstructure:"format"`
	SkipUnresolved  bool   `mapstructure:"skip_unresolved"`
	Parallel        bool   `mapstructure:"parallel"`
	MaxDepth        int    `mapstructure:"max_depth"`
	IncludeProfiles bool   `mapstructure:"include_profiles"`
	Maven           Maven  `mapstructure:"maven"`
	Scan            Scan   `mapstructure:"scan"`
}

// Maven holds Maven analyzer settings.
type Maven struct {
	SourceLanguage string `mapstructure:"source_language"`
}

// Scan holds scanner settings.
type Scan struct {
	// Ignore lists extra directory names or doublestar globs skipped while scanning
	Ignore []string `mapstructure:"ignore"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		LogLevel:       "info",
		Format:         render.FormatText,
		SkipUnresolved: true,
		MaxDepth:       analyzer.DefaultMaxDepth,
		Maven: Maven{
			SourceLanguage: "java",
		},
		Scan: Scan{
			Ignore: []string{},
		},
	}
}

// NewViper returns a viper instance with defaults and environment
// overrides registered. Callers may bind flags before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("skip_unresolved", defaults.SkipUnresolved)
	v.SetDefault("parallel", defaults.Parallel)
	v.SetDefault("max_depth", defaults.MaxDepth)
	v.SetDefault("include_profiles", defaults.IncludeProfiles)
	v.SetDefault("maven.source_language", defaults.Maven.SourceLanguage)
	v.SetDefault("scan.ignore", defaults.Scan.Ignore)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configFile when set, otherwise .psa.yaml in dir if present, and
// returns the merged configuration.
func Load(v *viper.Viper, configFile, dir string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Clean(dir))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings no command can act on.
func (c *Config) Validate() error {
	if !slices.Contains(render.Formats, c.Format) {
		return fmt.Errorf("invalid format %q: expected one of %s", c.Format, strings.Join(render.Formats, ", "))
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("invalid max_depth %d: must be positive", c.MaxDepth)
	}
	if strings.TrimSpace(c.Maven.SourceLanguage) == "" {
		return errors.New("maven.source_language must not be empty")
	}
	for _, pattern := range c.Scan.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid scan.ignore pattern %q", pattern)
		}
	}
	return nil
}
