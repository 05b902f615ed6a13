package analyzer

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBuildFileFound is returned when the project root holds no marker file.
	ErrNoBuildFileFound = errors.New("no build file found")

	// ErrUnrecognizedProjectPath is returned when the project path is not a
	// directory or has no usable final segment.
	ErrUnrecognizedProjectPath = errors.New("unrecognized project path")

	// ErrMalformedModule marks a sub-module declaration that escapes the
	// project, points at the declaring module or one of its ancestors, or
	// nests deeper than the configured limit.
	ErrMalformedModule = errors.New("malformed module declaration")

	// ErrUnresolvedModule marks a declared sub-module whose descriptor is
	// missing or unreadable.
	ErrUnresolvedModule = errors.New("unresolved module")
)

// ModuleError describes a failing sub-module declaration.
type ModuleError struct {
	// Parent is the directory of the module declaring the sub-module
	Parent string
	// Declared is the entry as written in the parent's descriptor
	Declared string
	// Path is the directory the entry resolved to
	Path string
	Err  error
}

func (e *ModuleError) Error() string {
	return fmt.Sprintf("module %q declared in %s (%s): %v", e.Declared, e.Parent, e.Path, e.Err)
}

func (e *ModuleError) Unwrap() error {
	return e.Err
}
