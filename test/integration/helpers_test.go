//go:build integration

package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/packagesmith/packagesmith/internal/fsys"
	"github.com/packagesmith/packagesmith/internal/logging"
	"github.com/packagesmith/packagesmith/internal/manifest"
	"github.com/packagesmith/packagesmith/internal/prompt"
	"github.com/packagesmith/packagesmith/internal/provision"
	"github.com/packagesmith/packagesmith/internal/shell"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // PACKAGESMITH_HOME
	ProjectDir string // the directory being provisioned, not yet created
	Manifest   string // manifest path, outside the project
	Out        bytes.Buffer
}

// setupTestEnv creates isolated temp directories and points PACKAGESMITH_HOME
// at one of them. Provisioning runs a real shell, so Windows is skipped.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell steps use /bin/sh")
	}
	color.NoColor = true

	env := &testEnv{HomeDir: t.TempDir()}
	env.ProjectDir = filepath.Join(t.TempDir(), "widget")
	env.Manifest = filepath.Join(t.TempDir(), "provision.yaml")
	t.Setenv("PACKAGESMITH_HOME", env.HomeDir)
	return env
}

// runner builds a Runner on the real file system and shell. Questions take
// their defaults; writes are confirmed when assumeYes is set.
func (env *testEnv) runner(assumeYes bool) *provision.Runner {
	console := prompt.New(strings.NewReader(""), &env.Out)
	console.AssumeYes = assumeYes
	return &provision.Runner{
		Asker:     console,
		Confirmer: console,
		Executor:  &shell.Executor{Project: env.ProjectDir},
		OpenFS:    func(p string) (provision.FS, error) { return fsys.OS(p), nil },
		Stdout:    &env.Out,
		Stderr:    &env.Out,
		Logger:    logging.Discard(),
	}
}

// load writes content as the manifest and loads it.
func (env *testEnv) load(t *testing.T, content string) *provision.Set {
	t.Helper()
	writeFile(t, env.Manifest, content)
	set, err := manifest.Load(env.Manifest, "1.0.0")
	if err != nil {
		t.Fatalf("loading manifest: %v", err)
	}
	return set
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileEquals fails if the file doesn't exist or differs from want.
func assertFileEquals(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if string(data) != want {
		t.Errorf("file %s:\ngot:\n%s\nwant:\n%s", path, data, want)
	}
}

// assertMode fails if path's permission bits differ from want.
func assertMode(t *testing.T, path string, want os.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("stat %s: %v", path, err)
		return
	}
	if got := info.Mode().Perm(); got != want {
		t.Errorf("mode of %s = %v, want %v", path, got, want)
	}
}
