package provision

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// State is a step of the pipeline state machine.
type State int

const (
	StateInit State = iota
	StateResolving
	StateDiffing
	StateConfirming
	StateRunningBefore
	StateWriting
	StateRunningCommand
	StateRunningAfter
	StateDone
	StateFailed
)

var stateNames = [...]string{
	"init", "resolving", "diffing", "confirming", "running-before",
	"writing", "running-command", "running-after", "done", "failed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	successText = color.New(color.FgGreen).SprintFunc()
	failText    = color.New(color.FgRed).SprintFunc()
)

// Runner wires the pipeline stages to their capabilities.
type Runner struct {
	Asker     Asker
	Confirmer Confirmer
	Executor  Executor

	// OpenFS returns the file system rooted at the absolute project path.
	OpenFS func(projectPath string) (FS, error)

	Stdout io.Writer
	Stderr io.Writer
	Env    []string
	Logger *slog.Logger

	// CommandWorkDir selects where command-stage shell steps run.
	CommandWorkDir WorkDir

	// OnState is called on every state transition.
	OnState func(State)
}

// Run executes the full pipeline against projectPath. On success it prints a
// completion message; on failure it prints the error and returns it.
func (r *Runner) Run(ctx context.Context, projectPath string, set *Set) (err error) {
	out := orStd(r.Stdout, os.Stdout)
	defer func() {
		if err != nil {
			r.enter(StateFailed)
			fmt.Fprintf(out, "\n%s\n\n", failText("Provisioning failed!"))
			fmt.Fprintf(out, "%+v\n", err)
			err = &reportedError{err: err}
			return
		}
		r.enter(StateDone)
		fmt.Fprintf(out, "\n%s\n\n", successText("Provisioning complete!"))
	}()

	r.enter(StateInit)
	rc, err := r.init(projectPath, set, true)
	if err != nil {
		return err
	}
	abs, fsys, logger := rc.abs, rc.fsys, rc.logger
	logger.Debug("running provisioner set")

	plan, err := r.plan(ctx, rc, set, true)
	if err != nil {
		return err
	}

	r.enter(StateConfirming)
	confirmed, err := ConfirmWrites(ctx, set, plan.recordMap(), r.Confirmer, out, logger)
	if err != nil {
		return err
	}
	toRun := set.Pick(confirmed)
	next := make(map[string]string, len(plan.Records))
	for _, rec := range plan.Records {
		next[rec.Path] = rec.Next
	}

	logger.Debug("beginning provisioning operations", "confirmed", len(confirmed))
	stages := r.stageRunner(logger)

	r.enter(StateRunningBefore)
	if err := stages.Run(ctx, abs, toRun, StageBefore); err != nil {
		return err
	}
	r.enter(StateWriting)
	if err := WriteAll(ctx, fsys, toRun, next, logger); err != nil {
		return err
	}
	r.enter(StateRunningCommand)
	if err := stages.Run(ctx, abs, set, StageCommand); err != nil {
		return err
	}
	r.enter(StateRunningAfter)
	return stages.Run(ctx, abs, toRun, StageAfter)
}

// Plan resolves answers, contents and diffs without confirming, writing or
// running steps. The project directory is not created.
func (r *Runner) Plan(ctx context.Context, projectPath string, set *Set) (*Plan, error) {
	rc, err := r.init(projectPath, set, false)
	if err != nil {
		return nil, err
	}
	return r.plan(ctx, rc, set, false)
}

// runContext carries what init resolves for one run.
type runContext struct {
	id     string
	abs    string
	fsys   FS
	logger *slog.Logger
}

func (r *Runner) init(projectPath string, set *Set, create bool) (*runContext, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := set.Validate(); err != nil {
		return nil, &Error{Code: CodeInput, Err: err}
	}
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, &Error{Code: CodeInput, Err: fmt.Errorf("resolving project path %s: %w", projectPath, err)}
	}
	if r.OpenFS == nil {
		return nil, &Error{Code: CodeInput, Err: fmt.Errorf("no file system configured")}
	}
	fsys, err := r.OpenFS(abs)
	if err != nil {
		return nil, &Error{Code: CodeWrite, Err: fmt.Errorf("opening %s: %w", abs, err)}
	}
	if create {
		if err := fsys.MkdirAll(".", dirPerm); err != nil {
			return nil, &Error{Code: CodeWrite, Err: fmt.Errorf("creating project directory %s: %w", abs, err)}
		}
	}
	id := uuid.NewString()
	return &runContext{
		id:     id,
		abs:    abs,
		fsys:   fsys,
		logger: logger.With("run_id", id, "project", abs),
	}, nil
}

func (r *Runner) plan(ctx context.Context, rc *runContext, set *Set, track bool) (*Plan, error) {
	abs, fsys, logger := rc.abs, rc.fsys, rc.logger
	if track {
		r.enter(StateResolving)
	}
	questions := GatherQuestions(abs, set, logger)
	answers := Answers{}
	if len(questions) > 0 {
		if r.Asker == nil {
			return nil, &Error{Code: CodePrompt, Err: fmt.Errorf("%d questions declared but no asker configured", len(questions))}
		}
		got, err := r.Asker.Ask(ctx, questions)
		if err != nil {
			return nil, &Error{Code: CodePrompt, Err: err}
		}
		if got != nil {
			answers = got
		}
	}

	current, err := GatherCurrentContents(ctx, fsys, set, logger)
	if err != nil {
		return nil, err
	}
	next, err := ResolveContents(set, current, answers, logger)
	if err != nil {
		return nil, err
	}

	if track {
		r.enter(StateDiffing)
	}
	plan := &Plan{RunID: rc.id, ProjectPath: abs, Answers: answers}
	_ = set.Each(func(p string, e Entry) error {
		rec := Record{Path: p, Kind: e.Kind, Current: current[p], Next: next[p]}
		if e.Kind == KindFile {
			logger.Debug("determining diff", "path", p)
			rec.Diff = ComputeDiff(rec.Current, rec.Next)
		}
		plan.Records = append(plan.Records, rec)
		return nil
	})
	return plan, nil
}

func (r *Runner) stageRunner(logger *slog.Logger) *StageRunner {
	return &StageRunner{
		Exec:     r.Executor,
		Stdout:   r.Stdout,
		Stderr:   r.Stderr,
		Env:      r.Env,
		WorkDirs: map[Stage]WorkDir{StageCommand: r.CommandWorkDir},
		Logger:   logger,
	}
}

func (r *Runner) enter(s State) {
	if r.OnState != nil {
		r.OnState(s)
	}
}
