//go:build integration

package integration_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/packagesmith/packagesmith/internal/provision"
	"github.com/packagesmith/packagesmith/internal/shell"
)

const nodeManifest = `requires: ">= 0.1.0"
files:
  - path: package.json
    contents:
      script: |
        var pkg = current ? JSON.parse(current) : {};
        pkg.name = answers.name;
        pkg.license = answers.license;
        return pkg;
    questions:
      - name: name
        default_expr: basename(project)
      - name: license
        type: list
        choices: [MIT, ISC]
        default: ISC
    command:
      - touch command.marker
  - path: src
    kind: directory
  - path: bin/tool
    permissions: "0755"
    contents:
      static: "#!/bin/sh\necho tool\n"
  - path: README.md
    contents:
      template: "# {{ .Answers.name }}\n"
    before:
      - echo before >> order.log
    after:
      - echo after >> order.log
`

// TestProvisionFromManifest runs a manifest end to end against a fresh directory.
func TestProvisionFromManifest(t *testing.T) {
	env := setupTestEnv(t)
	set := env.load(t, nodeManifest)

	if err := env.runner(true).Run(context.Background(), env.ProjectDir, set); err != nil {
		t.Fatalf("Run: %v\n%s", err, env.Out.String())
	}

	assertFileEquals(t, filepath.Join(env.ProjectDir, "package.json"), "{\n  \"name\": \"widget\",\n  \"license\": \"ISC\"\n}\n")
	assertFileEquals(t, filepath.Join(env.ProjectDir, "README.md"), "# widget\n")
	assertFileEquals(t, filepath.Join(env.ProjectDir, "bin", "tool"), "#!/bin/sh\necho tool\n")
	assertMode(t, filepath.Join(env.ProjectDir, "bin", "tool"), 0o755)
	assertFileNotExists(t, filepath.Join(env.ProjectDir, "src"))

	// Command steps run in the entry's parent directory.
	assertFileExists(t, filepath.Join(env.ProjectDir, "command.marker"))
	assertFileEquals(t, filepath.Join(env.ProjectDir, "order.log"), "before\nafter\n")

	out := env.Out.String()
	for _, want := range []string{
		"Provisioner wants to add package.json:",
		"Provisioner wants to add README.md:",
		"Provisioning complete!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// TestRerunIsIdempotent checks that a second run proposes no writes.
func TestRerunIsIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	set := env.load(t, nodeManifest)

	if err := env.runner(true).Run(context.Background(), env.ProjectDir, set); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	env.Out.Reset()
	if err := env.runner(true).Run(context.Background(), env.ProjectDir, set); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	if strings.Contains(env.Out.String(), "Provisioner wants to") {
		t.Errorf("second run proposed writes:\n%s", env.Out.String())
	}
	// Before and after steps belong to confirmed writes only.
	assertFileEquals(t, filepath.Join(env.ProjectDir, "order.log"), "before\nafter\n")
}

// TestScriptMergesExistingFile keeps fields the manifest does not own.
func TestScriptMergesExistingFile(t *testing.T) {
	env := setupTestEnv(t)
	writeFile(t, filepath.Join(env.ProjectDir, "package.json"), `{"version": "2.0.0"}`)
	set := env.load(t, nodeManifest)

	if err := env.runner(true).Run(context.Background(), env.ProjectDir, set); err != nil {
		t.Fatalf("Run: %v", err)
	}
	assertFileEquals(t, filepath.Join(env.ProjectDir, "package.json"),
		"{\n  \"version\": \"2.0.0\",\n  \"name\": \"widget\",\n  \"license\": \"ISC\"\n}\n")
	if !strings.Contains(env.Out.String(), "Provisioner wants to change package.json:") {
		t.Errorf("expected a change banner:\n%s", env.Out.String())
	}
}

// TestNonInteractiveDeclinesWrites runs without a terminal or --yes.
func TestNonInteractiveDeclinesWrites(t *testing.T) {
	env := setupTestEnv(t)
	set := env.load(t, nodeManifest)

	if err := env.runner(false).Run(context.Background(), env.ProjectDir, set); err != nil {
		t.Fatalf("Run: %v", err)
	}

	assertDirExists(t, env.ProjectDir)
	assertFileNotExists(t, filepath.Join(env.ProjectDir, "package.json"))
	assertFileNotExists(t, filepath.Join(env.ProjectDir, "order.log"))
	assertFileExists(t, filepath.Join(env.ProjectDir, "command.marker"))
}

// TestFailingStepIsReported checks the failure message and exit status.
func TestFailingStepIsReported(t *testing.T) {
	env := setupTestEnv(t)
	set := env.load(t, `files:
  - path: Makefile
    contents:
      static: "all:\n"
    command:
      - exit 3
    after:
      - touch never
`)

	err := env.runner(true).Run(context.Background(), env.ProjectDir, set)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !provision.IsReported(err) {
		t.Errorf("error was not reported: %v", err)
	}
	if !provision.IsCode(err, provision.CodeStage) {
		t.Errorf("code = %s, want stage", provision.CodeOf(err))
	}
	var exit *shell.ExitError
	if !errors.As(err, &exit) || exit.Code != 3 {
		t.Errorf("expected exit status 3, got %v", err)
	}

	assertFileExists(t, filepath.Join(env.ProjectDir, "Makefile"))
	assertFileNotExists(t, filepath.Join(env.ProjectDir, "never"))
	if !strings.Contains(env.Out.String(), "Provisioning failed!") {
		t.Errorf("output missing failure message:\n%s", env.Out.String())
	}
}

// TestHookStage runs a named hook outside the main pipeline.
func TestHookStage(t *testing.T) {
	env := setupTestEnv(t)
	set := env.load(t, `files:
  - path: src/index.js
    hooks:
      lint:
        - echo "$PACKAGESMITH_PATH" > linted
`)
	writeFile(t, filepath.Join(env.ProjectDir, "src", "index.js"), "")

	r := &provision.StageRunner{Exec: &shell.Executor{Project: env.ProjectDir}, Stdout: &env.Out, Stderr: &env.Out}
	if err := r.Run(context.Background(), env.ProjectDir, set, "lint"); err != nil {
		t.Fatalf("Run: %v\n%s", err, env.Out.String())
	}
	assertFileEquals(t, filepath.Join(env.ProjectDir, "src", "linted"), filepath.Join(env.ProjectDir, "src", "index.js")+"\n")
}
