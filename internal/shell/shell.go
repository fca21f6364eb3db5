package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/packagesmith/packagesmith/internal/branding"
	"github.com/packagesmith/packagesmith/internal/provision"
)

// Environment variables exported to every step.
var (
	EnvPath    = branding.EnvVar("PATH")
	EnvProject = branding.EnvVar("PROJECT")
)

// Executor runs command lines with `<shell> -c`.
type Executor struct {
	// Shell is the interpreter; defaults to /bin/sh (cmd on Windows).
	Shell string
	// Project is exported to steps as PACKAGESMITH_PROJECT.
	Project string
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Line string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", e.Line, e.Code)
}

// Exec runs cmd.Line in cmd.Dir with the child's standard streams connected
// to cmd.Stdout and cmd.Stderr. Standard input is not forwarded.
func (x *Executor) Exec(ctx context.Context, cmd provision.Command) error {
	name, flag := x.interpreter()
	bin, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("locating shell %s: %w", name, err)
	}

	c := exec.CommandContext(ctx, bin, flag, cmd.Line)
	c.Dir = cmd.Dir
	c.Env = buildEnv(cmd.Env, cmd.Path, x.Project)
	c.Stdout = cmd.Stdout
	c.Stderr = cmd.Stderr

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Line: cmd.Line, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("executing %q: %w", cmd.Line, err)
	}
	return nil
}

func (x *Executor) interpreter() (string, string) {
	if x.Shell != "" {
		if base := strings.ToLower(filepath.Base(x.Shell)); base == "cmd" || base == "cmd.exe" {
			return x.Shell, "/C"
		}
		return x.Shell, "-c"
	}
	if runtime.GOOS == "windows" {
		return "cmd", "/C"
	}
	return "/bin/sh", "-c"
}

// buildEnv copies base (or the process environment when nil) and adds the
// packagesmith variables.
func buildEnv(base []string, path, project string) []string {
	if base == nil {
		base = os.Environ()
	}
	env := make([]string, len(base))
	copy(env, base)
	if path != "" {
		env = setEnv(env, EnvPath, path)
	}
	if project != "" {
		env = setEnv(env, EnvProject, project)
	}
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
