package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/packagesmith/packagesmith/internal/fsys"
	"github.com/packagesmith/packagesmith/internal/manifest"
	"github.com/packagesmith/packagesmith/internal/prompt"
	"github.com/packagesmith/packagesmith/internal/provision"
	"github.com/packagesmith/packagesmith/internal/shell"
)

// openFS opens the project file system. Tests swap it for an in-memory tree.
var openFS = func(projectPath string) (provision.FS, error) {
	return fsys.OS(projectPath), nil
}

// runOptions are the flags shared by commands that provision a directory.
type runOptions struct {
	dir            string
	assumeYes      bool
	commandWorkDir string
}

func (o *runOptions) bind(cmd *cobra.Command, confirm bool) {
	cmd.Flags().StringVarP(&o.dir, "dir", "C", ".", "Project directory to provision")
	if confirm {
		cmd.Flags().BoolVarP(&o.assumeYes, "yes", "y", false, "Write every changed file without asking")
		cmd.Flags().StringVar(&o.commandWorkDir, "command-workdir", "", "Where command steps run: parent or resolved")
	}
}

// manifestPaths returns args, or the default manifest found in the current
// directory when none were given.
func manifestPaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	p, err := manifest.Find(".")
	if err != nil {
		return nil, err
	}
	return []string{p}, nil
}

// loadSet loads and merges the manifests named by args.
func loadSet(args []string) (*provision.Set, error) {
	paths, err := manifestPaths(args)
	if err != nil {
		return nil, err
	}
	logger.Debug("loading manifests", "paths", paths)
	return manifest.LoadAll(paths, buildVersion)
}

// newRunner wires a Runner to the terminal, the shell, and the file system.
func newRunner(cmd *cobra.Command, opts *runOptions) (*provision.Runner, error) {
	abs, err := filepath.Abs(opts.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", opts.dir, err)
	}

	wd := opts.commandWorkDir
	if wd == "" {
		wd = settings.CommandWorkDir
	}
	workDir, ok := provision.ParseWorkDir(wd)
	if !ok {
		return nil, fmt.Errorf("invalid command workdir %q: want parent or resolved", wd)
	}

	console := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
	console.AssumeYes = opts.assumeYes || settings.AssumeYes
	console.Logger = logger

	return &provision.Runner{
		Asker:          console,
		Confirmer:      console,
		Executor:       &shell.Executor{Shell: settings.Shell, Project: abs},
		OpenFS:         openFS,
		Stdout:         cmd.OutOrStdout(),
		Stderr:         cmd.ErrOrStderr(),
		Logger:         logger,
		CommandWorkDir: workDir,
		OnState: func(s provision.State) {
			logger.Debug("pipeline state", "state", s)
		},
	}, nil
}
