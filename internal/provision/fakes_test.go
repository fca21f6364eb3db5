package provision

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// fakeAsker returns canned answers and records the questions it saw.
type fakeAsker struct {
	answers Answers
	err     error
	asked   []Question
}

func (f *fakeAsker) Ask(_ context.Context, qs []Question) (Answers, error) {
	f.asked = append(f.asked, qs...)
	return f.answers, f.err
}

// fakeConfirmer answers by question text and records every question.
type fakeConfirmer struct {
	answers map[string]bool
	all     *bool
	asked   []string
}

func (f *fakeConfirmer) Confirm(_ context.Context, msg string) (bool, error) {
	f.asked = append(f.asked, msg)
	if f.all != nil {
		return *f.all, nil
	}
	return f.answers[msg], nil
}

func yes() *bool { b := true; return &b }
func no() *bool  { b := false; return &b }

// recordingExecutor records shell steps and fails the configured lines.
type recordingExecutor struct {
	mu    sync.Mutex
	calls []Command
	fail  map[string]error
	log   *[]string
}

func (r *recordingExecutor) Exec(_ context.Context, cmd Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, cmd)
	if r.log != nil {
		*r.log = append(*r.log, "sh:"+cmd.Line)
	}
	if err, ok := r.fail[cmd.Line]; ok {
		return err
	}
	return nil
}

func (r *recordingExecutor) lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Line
	}
	return out
}

// logStep returns a callable step appending label to log.
func logStep(log *[]string, label string) Step {
	return Func(label, func(context.Context, string) error {
		*log = append(*log, label)
		return nil
	})
}

// failingFS wraps an FS and fails writes or chmods of chosen paths.
type failingFS struct {
	FS
	failWrite map[string]bool
	failChmod map[string]bool
}

func (f *failingFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	if f.failWrite[name] {
		return fmt.Errorf("disk full")
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *failingFS) Chmod(name string, mode os.FileMode) error {
	if f.failChmod[name] {
		return fmt.Errorf("operation not permitted")
	}
	return f.FS.Chmod(name, mode)
}
