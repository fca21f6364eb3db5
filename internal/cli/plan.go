package cli

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc"
	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/packagesmith/packagesmith/internal/provision"
)

var (
	planOpts    runOptions
	planUnified bool
)

var (
	createText = color.New(color.FgGreen).SprintFunc()
	changeText = color.New(color.FgYellow).SprintFunc()
	dimText    = color.New(color.FgHiBlack).SprintFunc()
)

var planCmd = &cobra.Command{
	Use:   "plan [manifest...]",
	Short: "Show what run would change, without changing anything",
	Long: heredoc.Doc(`
		Resolve questions and contents for the given manifests and print the
		diff of every file that would be created or changed. Nothing is
		written and no steps run.
	`),
	Example: heredoc.Doc(`
		$ packagesmith plan
		$ packagesmith plan --unified > changes.patch
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadSet(args)
		if err != nil {
			return err
		}
		runner, err := newRunner(cmd, &planOpts)
		if err != nil {
			return err
		}
		plan, err := runner.Plan(cmd.Context(), planOpts.dir, set)
		if err != nil {
			return err
		}
		printPlan(cmd.OutOrStdout(), plan, planUnified)
		return nil
	},
}

func init() {
	planOpts.bind(planCmd, false)
	planCmd.Flags().BoolVar(&planUnified, "unified", false, "Print changes as a unified patch")
	rootCmd.AddCommand(planCmd)
}

func printPlan(w io.Writer, plan *provision.Plan, unified bool) {
	var created, changed, unchanged, dirs int
	for _, rec := range plan.Records {
		switch rec.Outcome() {
		case provision.OutcomeCreate:
			created++
		case provision.OutcomeChange:
			changed++
		case provision.OutcomeUnchanged:
			unchanged++
			continue
		case provision.OutcomeDirectory:
			dirs++
			if !unified {
				fmt.Fprintf(w, "%s %s/\n", dimText("dir"), rec.Path)
			}
			continue
		}

		if unified {
			fmt.Fprint(w, udiff.Unified("a/"+rec.Path, "b/"+rec.Path, rec.Current, rec.Next))
			continue
		}
		label := changeText("change")
		if rec.Outcome() == provision.OutcomeCreate {
			label = createText("create")
		}
		fmt.Fprintf(w, "%s %s\n%s\n", label, rec.Path, rec.Diff.Text)
	}

	if unified {
		return
	}
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "\n%d to create, %d to change, %d unchanged, %d directories\n", created, changed, unchanged, dirs)
}
