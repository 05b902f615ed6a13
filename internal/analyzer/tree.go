package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/go-psa/internal/filesystem"
	"github.com/jakoblorz/go-psa/internal/models"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxDepth bounds module nesting when no limit is configured.
const DefaultMaxDepth = 64

// Descriptor is what a module analyzer extracts from one module directory.
type Descriptor struct {
	ID          string
	ContentRoot models.ContentRoot
	// Modules are the declared sub-module entries, relative to the module directory
	Modules []string
}

// DescriptorReader loads the descriptor of moduleDir. It returns (nil, nil)
// when the directory is not a module for the build system.
type DescriptorReader func(ctx context.Context, moduleDir string) (*Descriptor, error)

// EntryResolver maps a declared sub-module entry to a directory.
type EntryResolver func(moduleDir, entry string) string

// TreeOptions control sub-module traversal.
type TreeOptions struct {
	// SkipUnresolved logs and drops sub-modules whose descriptor cannot be
	// loaded instead of failing the analysis.
	SkipUnresolved bool
	// Parallel analyzes sibling sub-modules concurrently.
	Parallel bool
	// MaxDepth bounds nesting; zero means DefaultMaxDepth.
	MaxDepth int
	Logger   *log.Logger
}

// DefaultTreeOptions skips unresolved sub-modules and walks sequentially.
func DefaultTreeOptions() TreeOptions {
	return TreeOptions{SkipUnresolved: true, MaxDepth: DefaultMaxDepth}
}

// TreeBuilder builds a module tree by following descriptor declarations
// depth first. Declaration order is kept in SubModules, also when siblings are
// analyzed in parallel.
type TreeBuilder struct {
	read    DescriptorReader
	resolve EntryResolver
	opts    TreeOptions
}

// ResolveEntry joins a relative entry onto moduleDir. Absolute entries are
// kept as they are.
func ResolveEntry(moduleDir, entry string) string {
	if filepath.IsAbs(entry) {
		return filepath.Clean(entry)
	}
	return filesystem.JoinPath(moduleDir, entry)
}

// NewTreeBuilder creates a TreeBuilder. A nil resolver uses ResolveEntry.
func NewTreeBuilder(read DescriptorReader, resolve EntryResolver, opts TreeOptions) *TreeBuilder {
	if resolve == nil {
		resolve = ResolveEntry
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &TreeBuilder{read: read, resolve: resolve, opts: opts}
}

// Build analyzes modulePath and its declared sub-modules. It returns (nil, nil)
// when modulePath itself is not a module.
func (b *TreeBuilder) Build(ctx context.Context, projectPath, modulePath string) (*models.Module, error) {
	return b.build(ctx, filepath.Clean(projectPath), filepath.Clean(modulePath), nil)
}

func (b *TreeBuilder) build(ctx context.Context, projectPath, modulePath string, ancestors []string) (*models.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	desc, err := b.read(ctx, modulePath)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, nil
	}

	module := models.NewModule(filepath.Base(modulePath), modulePath, desc.ContentRoot)
	module.ID = desc.ID

	lineage := make([]string, len(ancestors), len(ancestors)+1)
	copy(lineage, ancestors)
	lineage = append(lineage, modulePath)

	// entries resolving to the same directory are analyzed once
	var entries, paths []string
	seen := make(map[string]bool, len(desc.Modules))
	for _, entry := range desc.Modules {
		childPath := filepath.Clean(b.resolve(modulePath, entry))
		if seen[childPath] {
			b.opts.Logger.Debug("skipping duplicate module", "module", entry, "parent", modulePath)
			continue
		}
		seen[childPath] = true
		entries = append(entries, entry)
		paths = append(paths, childPath)
	}

	children := make([]*models.Module, len(entries))
	visit := func(ctx context.Context, i int) error {
		entry, childPath := entries[i], paths[i]

		if err := b.validate(projectPath, lineage, childPath); err != nil {
			return &ModuleError{Parent: modulePath, Declared: entry, Path: childPath, Err: err}
		}

		child, err := b.build(ctx, projectPath, childPath, lineage)
		switch {
		case err != nil && (errors.Is(err, ErrMalformedModule) || errors.Is(err, ErrUnresolvedModule) || ctx.Err() != nil):
			return err
		case err != nil:
			return b.unresolved(modulePath, entry, childPath, err)
		case child == nil:
			return b.unresolved(modulePath, entry, childPath, errors.New("descriptor not found"))
		}

		children[i] = child
		return nil
	}

	if b.opts.Parallel && len(entries) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.NumCPU())
		for i := range entries {
			g.Go(func() error { return visit(gctx, i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range entries {
			if err := visit(ctx, i); err != nil {
				return nil, err
			}
		}
	}

	for _, child := range children {
		if child != nil {
			module.SubModules = append(module.SubModules, child)
		}
	}

	return module, nil
}

func (b *TreeBuilder) validate(projectPath string, lineage []string, childPath string) error {
	if !filesystem.IsWithin(projectPath, childPath) {
		return fmt.Errorf("%w: outside project %s", ErrMalformedModule, projectPath)
	}
	for _, ancestor := range lineage {
		if ancestor == childPath {
			return fmt.Errorf("%w: cycle through %s", ErrMalformedModule, ancestor)
		}
	}
	if len(lineage) >= b.opts.MaxDepth {
		return fmt.Errorf("%w: nesting exceeds %d levels", ErrMalformedModule, b.opts.MaxDepth)
	}
	return nil
}

func (b *TreeBuilder) unresolved(parent, entry, childPath string, cause error) error {
	if b.opts.SkipUnresolved {
		b.opts.Logger.Warn("skipping unresolved module", "module", entry, "parent", parent, "err", cause)
		return nil
	}
	return &ModuleError{
		Parent:   parent,
		Declared: entry,
		Path:     childPath,
		Err:      fmt.Errorf("%w: %v", ErrUnresolvedModule, cause),
	}
}
