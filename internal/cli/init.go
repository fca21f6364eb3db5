package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/packagesmith/packagesmith/internal/scaffold"
)

var initOpts runOptions

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new provisioner package",
	Long: heredoc.Doc(`
		Bootstrap a provisioner package in a directory: a starter
		provision.yaml, an executable bin/provision wrapper, and a
		package.json that exposes it as provision-<name>.

		Existing files are kept; package.json keys already present win.
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := scaffold.Starter()
		if err != nil {
			return err
		}
		runner, err := newRunner(cmd, &initOpts)
		if err != nil {
			return err
		}
		return runner.Run(cmd.Context(), initOpts.dir, set)
	},
}

func init() {
	initOpts.bind(initCmd, true)
	rootCmd.AddCommand(initCmd)
}
