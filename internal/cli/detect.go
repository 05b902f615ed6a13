package cli

import (
	"errors"
	"fmt"

	"github.com/jakoblorz/go-psa/internal/analyzer"
	"github.com/jakoblorz/go-psa/internal/render"
	"github.com/spf13/cobra"
)

// DetectCommand handles the detect command
type DetectCommand struct {
	app *app
}

// NewDetectCommand creates a new detect command
func NewDetectCommand(a *app) *cobra.Command {
	cmd := &DetectCommand{app: a}

	return &cobra.Command{
		Use:   "detect [path]",
		Short: "Print the build system of a project",
		Long: `Classifies path by its marker file without analyzing modules.
Fails when no analyzer recognizes the directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}
}

// Run executes the detect command
func (c *DetectCommand) Run(cmd *cobra.Command, args []string) error {
	path, err := c.app.resolvePath(args)
	if err != nil {
		return err
	}

	for _, pa := range c.app.analyzers() {
		marker, err := pa.Detect(path)
		if errors.Is(err, analyzer.ErrNoBuildFileFound) {
			continue
		}
		if err != nil {
			return err
		}

		return render.WriteDetection(cmd.OutOrStdout(), c.app.cfg.Format, render.Detection{
			Path:        path,
			Analyzer:    pa.Name(),
			ProjectType: marker.Type,
			BuildFile:   marker.FileName,
		})
	}

	return fmt.Errorf("%w in %s", analyzer.ErrNoBuildFileFound, path)
}
