package script

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/packagesmith/packagesmith/internal/provision"
)

// exprEnv is the variable set expressions compile against.
func exprEnv(answers map[string]any, args []any, project string) map[string]any {
	return map[string]any{
		"answers":  answers,
		"args":     args,
		"project":  project,
		"basename": filepath.Base,
		"dirname":  filepath.Dir,
		"env":      os.Getenv,
		"kebab":    Kebab,
	}
}

// Expression compiles src into an evaluator for question defaults and
// conditions. The evaluator receives the prompt layer's arguments: an answer
// map is exposed as `answers` and the last string argument (the bound
// project path) as `project`. All arguments are available as `args`.
func Expression(src string) (provision.Evaluator, error) {
	prog, err := expr.Compile(src, expr.Env(exprEnv(nil, nil, "")))
	if err != nil {
		return nil, &provision.Error{Code: provision.CodeScript, Err: fmt.Errorf("compiling expression %q: %w", src, err)}
	}
	return func(_ context.Context, args ...any) (any, error) {
		return run(prog, src, args)
	}, nil
}

func run(prog *vm.Program, src string, args []any) (any, error) {
	answers := map[string]any{}
	project := ""
	for _, a := range args {
		switch v := a.(type) {
		case provision.Answers:
			answers = v
		case map[string]any:
			answers = v
		case string:
			project = v
		}
	}
	if args == nil {
		args = []any{}
	}
	out, err := expr.Run(prog, exprEnv(answers, args, project))
	if err != nil {
		return nil, &provision.Error{Code: provision.CodeScript, Err: fmt.Errorf("evaluating expression %q: %w", src, err)}
	}
	return out, nil
}
