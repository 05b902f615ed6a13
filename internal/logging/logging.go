package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every line psa logs.
const Prefix = "psa"

// LevelSilent discards all output.
const LevelSilent = "silent"

// New creates a logger writing to w at the named level
// (debug, info, warn, error or silent). An empty level means info.
func New(w io.Writer, level string) (*log.Logger, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = log.InfoLevel.String()
	}
	if level == LevelSilent {
		return log.New(io.Discard), nil
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  lvl,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
