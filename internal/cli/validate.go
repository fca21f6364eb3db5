package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/packagesmith/packagesmith/internal/manifest"
)

var (
	okText  = color.New(color.FgGreen).SprintFunc()
	badText = color.New(color.FgRed).SprintFunc()
)

var validateCmd = &cobra.Command{
	Use:   "validate [manifest...]",
	Short: "Check manifests against the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := manifestPaths(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		failed := 0
		for _, p := range paths {
			res, err := manifest.ValidateFile(p)
			if err != nil {
				return err
			}
			if !res.Valid {
				failed++
				fmt.Fprintf(out, "%s %s\n", badText("invalid"), p)
				for _, issue := range res.Issues {
					fmt.Fprintf(out, "  %s\n", issue)
				}
				continue
			}
			// Schema-valid manifests can still fail to compile or to
			// satisfy the engine version.
			if _, err := manifest.Load(p, buildVersion); err != nil {
				failed++
				fmt.Fprintf(out, "%s %s\n  %v\n", badText("invalid"), p, err)
				continue
			}
			fmt.Fprintf(out, "%s %s\n", okText("valid"), p)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d manifests invalid", failed, len(paths))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
