package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run [manifest...]",
	Short: "Provision a project from manifests",
	Long: heredoc.Doc(`
		Provision a project directory from one or more manifests.

		Manifests are merged left to right. Questions are asked once, each
		changed file is shown as a diff and confirmed, then before steps,
		writes, command steps and after steps run in that order. Command
		steps run for every entry, even when its file was left unchanged.

		Without arguments the provision.yaml (or .yml, .toml) in the current
		directory is used.
	`),
	Example: heredoc.Doc(`
		$ packagesmith run
		$ packagesmith run base.yaml node.yaml --dir ./my-app
		$ packagesmith run --yes --command-workdir resolved
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadSet(args)
		if err != nil {
			return err
		}
		runner, err := newRunner(cmd, &runOpts)
		if err != nil {
			return err
		}
		return runner.Run(cmd.Context(), runOpts.dir, set)
	},
}

func init() {
	runOpts.bind(runCmd, true)
	rootCmd.AddCommand(runCmd)
}
