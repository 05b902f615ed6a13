package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/jakoblorz/go-psa/internal/filesystem"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem) *cobra.Command {
	a := newApp(fs)

	rootCmd := &cobra.Command{
		Use:   "psa",
		Short: "Analyze the module structure of build-system projects",
		Long: `psa discovers the module hierarchy of Maven and Go projects.

It detects the build system from the marker file in a project root, follows
the declared sub-modules and reports each module with its source, resource,
test source and test resource directories.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	a.registerFlags(rootCmd)

	rootCmd.AddCommand(NewAnalyzeCommand(a))
	rootCmd.AddCommand(NewDetectCommand(a))
	rootCmd.AddCommand(NewScanCommand(a))

	return rootCmd
}

// Execute runs the root command; fang prints the error, callers only pick
// the exit code.
func Execute() error {
	rootCmd := NewRootCommand(filesystem.NewOSFileSystem())

	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	)
}
