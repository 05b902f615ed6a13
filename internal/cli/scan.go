package cli

import (
	"fmt"

	"github.com/jakoblorz/go-psa/internal/render"
	"github.com/spf13/cobra"
)

// ScanCommand handles the scan command
type ScanCommand struct {
	app *app
}

// NewScanCommand creates a new scan command
func NewScanCommand(a *app) *cobra.Command {
	cmd := &ScanCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Find and analyze every project below a directory",
		Long: `Walks root (the working directory by default) and analyzes every directory
an analyzer recognizes. Directories of a found project are not searched for
further projects. Version control, IDE and build output directories are
skipped, as are paths ignored by root's .gitignore.

Projects that fail analysis are logged and left out of the output. With
--strict the command then exits with an error.`,
		Example: `  # List every project in a checkout directory
  psa scan ~/src

  # Machine readable, also skipping a sandbox directory
  PSA_SCAN_IGNORE=sandbox psa scan -f yaml ~/src`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().Bool("strict", false, "Fail when any project fails analysis")

	return cobraCmd
}

// Run executes the scan command
func (c *ScanCommand) Run(cmd *cobra.Command, args []string) error {
	root, err := c.app.resolvePath(args)
	if err != nil {
		return err
	}

	projects, scanErr := c.app.workspace().Scan(cmd.Context(), root)
	if projects == nil {
		return scanErr
	}

	if err := render.Write(cmd.OutOrStdout(), c.app.cfg.Format, projects); err != nil {
		return err
	}

	if scanErr != nil {
		c.app.logger.Warn("some projects could not be analyzed", "root", root, "err", scanErr)
		if strict, _ := cmd.Flags().GetBool("strict"); strict {
			return fmt.Errorf("scan of %s incomplete: %w", root, scanErr)
		}
	}

	return nil
}
