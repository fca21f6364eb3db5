package cli

import (
	"fmt"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/packagesmith/packagesmith/internal/provision"
	"github.com/packagesmith/packagesmith/internal/shell"
)

var hookDir string

var hookCmd = &cobra.Command{
	Use:   "hook <stage> [manifest...]",
	Short: "Run one named stage for every entry",
	Long: heredoc.Doc(`
		Run the steps registered for a stage (before, command, after or a
		custom hook name) across every entry of the merged manifests, in
		entry order. No questions are asked and no files are written.
	`),
	Example: heredoc.Doc(`
		$ packagesmith hook lint
		$ packagesmith hook command base.yaml --dir ./my-app
	`),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stage := provision.Stage(args[0])
		set, err := loadSet(args[1:])
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(hookDir)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", hookDir, err)
		}
		wd, ok := provision.ParseWorkDir(settings.CommandWorkDir)
		if !ok {
			return fmt.Errorf("invalid command workdir %q: want parent or resolved", settings.CommandWorkDir)
		}

		runner := &provision.StageRunner{
			Exec:     &shell.Executor{Shell: settings.Shell, Project: abs},
			Stdout:   cmd.OutOrStdout(),
			Stderr:   cmd.ErrOrStderr(),
			WorkDirs: map[provision.Stage]provision.WorkDir{provision.StageCommand: wd},
			Logger:   logger,
		}
		return runner.Run(cmd.Context(), abs, set, stage)
	},
}

func init() {
	hookCmd.Flags().StringVarP(&hookDir, "dir", "C", ".", "Project directory")
	rootCmd.AddCommand(hookCmd)
}
