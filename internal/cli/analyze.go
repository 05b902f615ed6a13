package cli

import (
	"github.com/jakoblorz/go-psa/internal/render"
	"github.com/spf13/cobra"
)

// AnalyzeCommand handles the analyze command
type AnalyzeCommand struct {
	app *app
}

// NewAnalyzeCommand creates a new analyze command
func NewAnalyzeCommand(a *app) *cobra.Command {
	cmd := &AnalyzeCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze the module tree of one project",
		Long: `Analyzes the project at path (the working directory by default).

The first analyzer whose marker file is present in path handles the project:
jvm (pom.xml, build.gradle, build.gradle.kts) before go (go.work, go.mod).
Gradle projects are reported with project type unknown and no modules.`,
		Example: `  # Analyze the project in the working directory
  psa analyze

  # Analyze the nearest project above a source directory as JSON
  psa analyze --find-root -f json ./core/src/main/java`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().Bool("find-root", false, "Walk up from path to the nearest project root")

	return cobraCmd
}

// Run executes the analyze command
func (c *AnalyzeCommand) Run(cmd *cobra.Command, args []string) error {
	path, err := c.app.resolvePath(args)
	if err != nil {
		return err
	}

	ws := c.app.workspace()

	if findRoot, _ := cmd.Flags().GetBool("find-root"); findRoot {
		if path, err = ws.FindRoot(path); err != nil {
			return err
		}
	}

	project, err := ws.Analyze(cmd.Context(), path)
	if err != nil {
		return err
	}

	return render.WriteProject(cmd.OutOrStdout(), c.app.cfg.Format, project)
}
