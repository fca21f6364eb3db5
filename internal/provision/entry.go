package provision

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
)

// Kind distinguishes file entries from directory entries.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a manifest kind name to a Kind. An empty name is a file.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "", "file":
		return KindFile, nil
	case "directory", "dir", "folder":
		return KindDirectory, nil
	default:
		return KindFile, fmt.Errorf("unknown entry kind %q", name)
	}
}

// Answers holds the user's responses keyed by question name.
type Answers map[string]any

// String returns the answer for name formatted as a string, or "" when unset.
func (a Answers) String(name string) string {
	v, ok := a[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Generator computes new file contents from the current contents and answers.
type Generator func(current string, answers Answers) (string, error)

type contentsKind uint8

const (
	contentsNone contentsKind = iota
	contentsStatic
	contentsGenerator
)

// Contents is either absent, a fixed string, or a Generator.
type Contents struct {
	kind contentsKind
	text string
	gen  Generator
}

// Static returns Contents that always resolve to text.
func Static(text string) Contents {
	return Contents{kind: contentsStatic, text: text}
}

// Generate returns Contents computed by fn. A nil fn yields absent contents.
func Generate(fn Generator) Contents {
	if fn == nil {
		return Contents{}
	}
	return Contents{kind: contentsGenerator, gen: fn}
}

func (c Contents) IsZero() bool      { return c.kind == contentsNone }
func (c Contents) IsStatic() bool    { return c.kind == contentsStatic }
func (c Contents) IsGenerator() bool { return c.kind == contentsGenerator }

// Resolve returns the desired contents. ok is false when no contents are declared.
func (c Contents) Resolve(current string, answers Answers) (text string, ok bool, err error) {
	switch c.kind {
	case contentsStatic:
		return c.text, true, nil
	case contentsGenerator:
		text, err = c.gen(current, answers)
		return text, true, err
	default:
		return "", false, nil
	}
}

// generator returns c as a Generator. Static contents ignore the current value.
func (c Contents) generator() Generator {
	switch c.kind {
	case contentsStatic:
		text := c.text
		return func(string, Answers) (string, error) { return text, nil }
	case contentsGenerator:
		return c.gen
	default:
		return nil
	}
}

// Action is a callable step. It receives the entry's resolved absolute path.
type Action func(ctx context.Context, path string) error

var stepSeq atomic.Uint64

// Step is one unit of work in a stage: a shell command line or an Action.
type Step struct {
	line string
	name string
	fn   Action
	id   uint64
}

// Shell returns a step that runs line through the configured Executor.
func Shell(line string) Step {
	return Step{line: line}
}

// Func returns a step that calls fn. Copies of the returned Step share its
// identity, so the same step registered by two sets is deduplicated on merge.
func Func(name string, fn Action) Step {
	return Step{name: name, fn: fn, id: stepSeq.Add(1)}
}

// IsShell reports whether the step is a command line.
func (s Step) IsShell() bool { return s.fn == nil }

// Line returns the command line of a shell step.
func (s Step) Line() string { return s.line }

// Key identifies a step for deduplication.
func (s Step) Key() string {
	if s.IsShell() {
		return "sh:" + s.line
	}
	return fmt.Sprintf("fn#%d", s.id)
}

func (s Step) String() string {
	if s.IsShell() {
		return s.line
	}
	if s.name != "" {
		return s.name
	}
	return fmt.Sprintf("func#%d", s.id)
}

// Stage names a lifecycle point at which an entry's steps execute.
type Stage string

const (
	StageBefore  Stage = "before"
	StageCommand Stage = "command"
	StageAfter   Stage = "after"
)

// Entry describes the desired state and lifecycle steps of one path.
type Entry struct {
	Kind        Kind
	Contents    Contents
	Questions   []Question
	Before      []Step
	After       []Step
	Command     []Step
	Hooks       map[Stage][]Step
	Permissions *os.FileMode
}

// Steps returns the entry's steps for stage.
func (e Entry) Steps(stage Stage) []Step {
	switch stage {
	case StageBefore:
		return e.Before
	case StageAfter:
		return e.After
	case StageCommand:
		return e.Command
	default:
		return e.Hooks[stage]
	}
}

// Mode is a convenience for building an Entry's Permissions field.
func Mode(m os.FileMode) *os.FileMode {
	return &m
}
