package manifest

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/packagesmith/packagesmith/internal/provision"
	"github.com/packagesmith/packagesmith/internal/script"
)

// ToSet converts m into a provisioner set, compiling scripts, templates and
// expressions. Files keep their declaration order.
func ToSet(m *Manifest) (*provision.Set, error) {
	set := provision.NewSet()
	seen := make(map[string]bool, len(m.Files))
	for i, f := range m.Files {
		if seen[f.Path] {
			return nil, fmt.Errorf("files[%d]: duplicate path %q", i, f.Path)
		}
		seen[f.Path] = true

		e, err := toEntry(f)
		if err != nil {
			return nil, fmt.Errorf("files[%d] (%s): %w", i, f.Path, err)
		}
		set.Add(f.Path, e)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

func toEntry(f FileSpec) (provision.Entry, error) {
	var e provision.Entry

	kind, err := provision.ParseKind(f.Kind)
	if err != nil {
		return e, err
	}
	e.Kind = kind

	if f.Permissions != "" {
		mode, err := ParsePermissions(f.Permissions)
		if err != nil {
			return e, err
		}
		e.Permissions = provision.Mode(mode)
	}

	if f.Contents != nil {
		if e.Contents, err = toContents(*f.Contents); err != nil {
			return e, err
		}
	}

	for _, q := range f.Questions {
		pq, err := toQuestion(q)
		if err != nil {
			return e, fmt.Errorf("question %s: %w", q.Name, err)
		}
		e.Questions = append(e.Questions, pq)
	}

	e.Before = shellSteps(f.Before)
	e.Command = shellSteps(f.Command)
	e.After = shellSteps(f.After)
	if len(f.Hooks) > 0 {
		e.Hooks = make(map[provision.Stage][]provision.Step, len(f.Hooks))
		for name, lines := range f.Hooks {
			e.Hooks[provision.Stage(name)] = shellSteps(lines)
		}
	}
	return e, nil
}

func toContents(c ContentsSpec) (provision.Contents, error) {
	switch {
	case c.Static != nil:
		return provision.Static(*c.Static), nil
	case c.Script != "":
		gen, err := script.Script(c.Script)
		if err != nil {
			return provision.Contents{}, err
		}
		return provision.Generate(gen), nil
	case c.Template != nil:
		gen, err := script.Template(*c.Template)
		if err != nil {
			return provision.Contents{}, err
		}
		return provision.Generate(gen), nil
	}
	return provision.Contents{}, nil
}

func toQuestion(q QuestionSpec) (provision.Question, error) {
	pq := provision.Question{
		Name:    q.Name,
		Message: q.Message,
		Type:    provision.QuestionType(q.Type),
		Choices: q.Choices,
	}
	if pq.Type == "" {
		pq.Type = provision.QuestionInput
	}
	if pq.Message == "" {
		pq.Message = q.Name
	}

	switch {
	case q.DefaultExpr != "":
		ev, err := script.Expression(q.DefaultExpr)
		if err != nil {
			return pq, err
		}
		pq.Default = ev
	case q.Default != nil:
		pq.Default = provision.Value(q.Default)
	}

	if q.When != "" {
		ev, err := script.Expression(q.When)
		if err != nil {
			return pq, err
		}
		pq.When = ev
	}
	return pq, nil
}

func shellSteps(lines []string) []provision.Step {
	if len(lines) == 0 {
		return nil
	}
	steps := make([]provision.Step, len(lines))
	for i, l := range lines {
		steps[i] = provision.Shell(l)
	}
	return steps
}

// ParsePermissions parses an octal permission string such as "0644" or "755".
func ParsePermissions(s string) (os.FileMode, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0o"), 8, 32)
	if err != nil || v > 0o7777 {
		return 0, fmt.Errorf("invalid permissions %q: want octal like 0644", s)
	}
	return os.FileMode(v), nil
}
