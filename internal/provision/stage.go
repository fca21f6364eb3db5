package provision

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Command is an external command line to execute for a step.
type Command struct {
	Line   string
	Dir    string
	Path   string // resolved entry path the step belongs to
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// Executor runs shell steps.
type Executor interface {
	Exec(ctx context.Context, cmd Command) error
}

// WorkDir selects the working directory of shell steps.
type WorkDir int

const (
	// WorkDirParent runs commands in the directory containing the entry.
	WorkDirParent WorkDir = iota
	// WorkDirResolved runs commands in the entry's resolved path itself.
	WorkDirResolved
)

// ParseWorkDir maps "parent" or "resolved" to a WorkDir.
func ParseWorkDir(name string) (WorkDir, bool) {
	switch name {
	case "", "parent":
		return WorkDirParent, true
	case "resolved":
		return WorkDirResolved, true
	default:
		return WorkDirParent, false
	}
}

// StageRunner executes the steps registered for one stage.
type StageRunner struct {
	Exec     Executor
	Stdout   io.Writer
	Stderr   io.Writer
	Env      []string
	WorkDirs map[Stage]WorkDir
	Logger   *slog.Logger
}

// Run executes the stage's steps for every entry in set order, each entry's
// steps in declared order. The first failing step aborts the stage.
func (r *StageRunner) Run(ctx context.Context, projectPath string, set *Set, stage Stage) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return set.Each(func(p string, e Entry) error {
		resolved := filepath.Join(projectPath, filepath.FromSlash(p))
		for _, step := range e.Steps(stage) {
			if err := ctx.Err(); err != nil {
				return &Error{Code: CodeStage, Stage: stage, Path: p, Step: step.String(), Err: err}
			}
			logger.Debug("running step", "stage", stage, "path", p, "step", step.String())
			if err := r.runStep(ctx, stage, resolved, step); err != nil {
				return &Error{Code: CodeStage, Stage: stage, Path: p, Step: step.String(), Err: err}
			}
		}
		return nil
	})
}

func (r *StageRunner) runStep(ctx context.Context, stage Stage, resolved string, step Step) error {
	if !step.IsShell() {
		return step.fn(ctx, resolved)
	}
	dir := filepath.Dir(resolved)
	if r.WorkDirs[stage] == WorkDirResolved {
		dir = resolved
	}
	env := r.Env
	if env == nil {
		env = os.Environ()
	}
	return r.Exec.Exec(ctx, Command{
		Line:   step.Line(),
		Dir:    dir,
		Path:   resolved,
		Env:    env,
		Stdout: orStd(r.Stdout, os.Stdout),
		Stderr: orStd(r.Stderr, os.Stderr),
	})
}

func orStd(w, std io.Writer) io.Writer {
	if w == nil {
		return std
	}
	return w
}
