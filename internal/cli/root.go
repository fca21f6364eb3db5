package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/MakeNowJust/heredoc"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/packagesmith/packagesmith/internal/branding"
	"github.com/packagesmith/packagesmith/internal/config"
	"github.com/packagesmith/packagesmith/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagVerbose  bool
	flagNoColor  bool
	flagLogLevel string

	settings config.Settings
	logger   = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + heredoc.Doc(`
		 provisions project files from declarative manifests.

		Each manifest maps target paths to their desired contents, questions,
		permissions and lifecycle commands. Changes are shown as diffs and
		confirmed file by file before anything is written.
	`),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// setup loads configuration and builds the logger before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	config.Load()
	settings = config.Current()

	switch {
	case flagNoColor || settings.Color == "never":
		color.NoColor = true
	case settings.Color == "always":
		color.NoColor = false
	}

	level := settings.LogLevel
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if flagVerbose {
		level = "debug"
	}
	l, err := logging.New(cmd.ErrOrStderr(), level)
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	logger = l.With("cmd", cmd.Name())
	slog.SetDefault(logger)
	return nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
