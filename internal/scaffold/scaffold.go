package scaffold

import (
	"context"
	_ "embed"
	"fmt"
	"path/filepath"

	"github.com/packagesmith/packagesmith/internal/provision"
	"github.com/packagesmith/packagesmith/internal/script"
)

var (
	//go:embed templates/provision.yaml.tmpl
	manifestTemplate string
	//go:embed templates/package.js
	packageScript string
	//go:embed templates/provision.sh
	binScript string
)

// Questions asked by the starter set.
var (
	NameQuestion = provision.Question{
		Name:    "name",
		Message: "What is the name of this provisioner?",
		Type:    provision.QuestionInput,
		Default: projectBasename,
	}
	DescriptionQuestion = provision.Question{
		Name:    "description",
		Message: "Describe what this provisioner sets up:",
		Type:    provision.QuestionInput,
	}
)

// projectBasename defaults to the project directory's name. The project path
// is the last argument bound by GatherQuestions.
func projectBasename(_ context.Context, args ...any) (any, error) {
	for i := len(args) - 1; i >= 0; i-- {
		if p, ok := args[i].(string); ok && p != "" {
			return filepath.Base(p), nil
		}
	}
	return "", nil
}

// Starter returns the provisioner set that bootstraps a new provisioner
// package: a provision.yaml manifest, an executable bin/provision wrapper,
// and a package.json exposing it as provision-<name>.
func Starter() (*provision.Set, error) {
	manifestGen, err := script.Template(manifestTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading provision.yaml template: %w", err)
	}
	packageGen, err := script.Script(packageScript)
	if err != nil {
		return nil, fmt.Errorf("loading package.json script: %w", err)
	}

	set := provision.NewSet().
		Add("provision.yaml", provision.Entry{
			Contents:  provision.Generate(manifestGen),
			Questions: []provision.Question{NameQuestion},
		}).
		Add("bin/provision", provision.Entry{
			Contents:    provision.Generate(keepExisting(binScript)),
			Permissions: provision.Mode(0o755),
		}).
		Add("package.json", provision.Entry{
			Contents:  provision.Generate(packageGen),
			Questions: []provision.Question{NameQuestion, DescriptionQuestion},
			After: []provision.Step{
				provision.Shell("npm prune"),
				provision.Shell("npm install"),
			},
		})
	return set, nil
}

// keepExisting returns a generator that leaves existing contents alone and
// fills empty files with text.
func keepExisting(text string) provision.Generator {
	return func(current string, _ provision.Answers) (string, error) {
		if current != "" {
			return current, nil
		}
		return text, nil
	}
}
