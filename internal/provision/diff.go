package provision

import (
	"strings"

	"github.com/aymanbagabas/go-udiff/myers"
	"github.com/fatih/color"
)

// Op tags a diff part.
type Op int

const (
	OpUnchanged Op = iota
	OpAdded
	OpRemoved
)

func (o Op) String() string {
	switch o {
	case OpAdded:
		return "added"
	case OpRemoved:
		return "removed"
	default:
		return "unchanged"
	}
}

// Part is a run of consecutive lines sharing one Op.
type Part struct {
	Op    Op
	Value string
}

// Diff is the line diff between an entry's current and new contents.
// Text is the colorized rendering shown to the user.
type Diff struct {
	Parts []Part
	Text  string
}

var (
	diffAdded     = color.New(color.FgGreen).SprintFunc()
	diffRemoved   = color.New(color.FgRed).SprintFunc()
	diffUnchanged = color.New(color.FgHiBlack).SprintFunc()
)

// ComputeDiff diffs current against next line by line using a Myers
// shortest edit script, so the unchanged parts form a longest common
// subsequence of lines. Each line keeps its trailing newline.
func ComputeDiff(current, next string) Diff {
	var parts []Part
	emit := func(op Op, value string) {
		if value == "" {
			return
		}
		if n := len(parts); n > 0 && parts[n-1].Op == op {
			parts[n-1].Value += value
			return
		}
		parts = append(parts, Part{Op: op, Value: value})
	}

	// Edits are ordered by their byte offsets into current.
	pos := 0
	for _, e := range myers.ComputeEdits(current, next) {
		emit(OpUnchanged, current[pos:e.Start])
		emit(OpRemoved, current[e.Start:e.End])
		emit(OpAdded, e.New)
		pos = e.End
	}
	emit(OpUnchanged, current[pos:])
	return Diff{Parts: parts, Text: Render(parts)}
}

// Render formats parts for display: added lines prefixed "+ ", removed lines
// "- ", unchanged lines two spaces. Added and removed blocks start on a new line.
func Render(parts []Part) string {
	var sb strings.Builder
	for _, part := range parts {
		switch part.Op {
		case OpAdded:
			sb.WriteString(diffAdded(leadingNewline(prefixLines(part.Value, "+ "))))
		case OpRemoved:
			sb.WriteString(diffRemoved(leadingNewline(prefixLines(part.Value, "- "))))
		default:
			sb.WriteString(diffUnchanged(prefixLines(part.Value, "  ")))
		}
	}
	return sb.String()
}

// Reconstruct rebuilds one side of the diff: the original text when
// op is OpRemoved, the new text when op is OpAdded.
func (d Diff) Reconstruct(op Op) string {
	var sb strings.Builder
	for _, p := range d.Parts {
		if p.Op == OpUnchanged || p.Op == op {
			sb.WriteString(p.Value)
		}
	}
	return sb.String()
}

func prefixLines(value, prefix string) string {
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func leadingNewline(s string) string {
	if s == "" {
		return ""
	}
	return "\n" + s
}
