package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/packagesmith/packagesmith/internal/provision"
)

var (
	markText    = color.New(color.FgGreen, color.Bold).SprintFunc()
	defaultText = color.New(color.FgHiBlack).SprintFunc()
)

// Console asks questions on a line-oriented reader and writer.
type Console struct {
	In  io.Reader
	Out io.Writer

	// Interactive is false when no terminal is attached. Questions then take
	// their defaults and confirmations are declined.
	Interactive bool
	// AssumeYes confirms every write without asking.
	AssumeYes bool
	Logger    *slog.Logger

	reader *bufio.Reader
}

// New returns a Console on in and out, interactive when in is a terminal.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{In: in, Out: out, Interactive: IsTerminal(in)}
}

// IsTerminal reports whether r is a terminal file.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *Console) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Console) readLine() (string, error) {
	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}
	line, err := c.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Ask asks each question in order. A question whose When evaluates falsy is
// skipped. Default and When receive the answers gathered so far.
func (c *Console) Ask(ctx context.Context, questions []provision.Question) (provision.Answers, error) {
	answers := provision.Answers{}
	for _, q := range questions {
		if q.When != nil {
			ok, err := eval(ctx, q.When, answers)
			if err != nil {
				return nil, fmt.Errorf("evaluating when for %s: %w", q.Name, err)
			}
			if !truthy(ok) {
				c.logger().Debug("skipping question", "name", q.Name)
				continue
			}
		}
		def, err := eval(ctx, q.Default, answers)
		if err != nil {
			return nil, fmt.Errorf("evaluating default for %s: %w", q.Name, err)
		}

		if !c.Interactive {
			answers[q.Name] = defaultAnswer(q, def)
			c.logger().Debug("using default answer", "name", q.Name, "value", answers[q.Name])
			continue
		}

		var v any
		switch q.Type {
		case provision.QuestionConfirm:
			v, err = c.askConfirm(q, def)
		case provision.QuestionList:
			v, err = c.askList(q, def)
		default:
			v, err = c.askInput(q, def)
		}
		if err != nil {
			return nil, err
		}
		answers[q.Name] = v
	}
	return answers, nil
}

// Confirm asks a yes/no question. An empty answer means yes.
func (c *Console) Confirm(_ context.Context, message string) (bool, error) {
	if c.AssumeYes {
		fmt.Fprintf(c.Out, "%s %s %s\n", markText("?"), message, defaultText("yes"))
		return true, nil
	}
	if !c.Interactive {
		c.logger().Info("declining write, no terminal attached", "question", message)
		return false, nil
	}
	fmt.Fprintf(c.Out, "%s %s %s ", markText("?"), message, defaultText("(Y/n)"))
	line, err := c.readLine()
	if err != nil {
		return false, err
	}
	if line == "" {
		return true, nil
	}
	yes, _ := parseYesNo(line)
	return yes, nil
}

func (c *Console) askInput(q provision.Question, def any) (any, error) {
	hint := ""
	if def != nil && fmt.Sprint(def) != "" {
		hint = " " + defaultText("("+fmt.Sprint(def)+")")
	}
	fmt.Fprintf(c.Out, "%s %s%s ", markText("?"), q.Message, hint)
	line, err := c.readLine()
	if err != nil {
		return nil, err
	}
	if line == "" {
		return defaultAnswer(q, def), nil
	}
	return line, nil
}

func (c *Console) askConfirm(q provision.Question, def any) (any, error) {
	hint := "(y/N)"
	if truthy(def) {
		hint = "(Y/n)"
	}
	fmt.Fprintf(c.Out, "%s %s %s ", markText("?"), q.Message, defaultText(hint))
	line, err := c.readLine()
	if err != nil {
		return nil, err
	}
	if yes, ok := parseYesNo(line); ok {
		return yes, nil
	}
	return truthy(def), nil
}

func (c *Console) askList(q provision.Question, def any) (any, error) {
	if len(q.Choices) == 0 {
		return nil, fmt.Errorf("question %s has no choices", q.Name)
	}
	idx, err := selectFromList(c, q.Message, q.Choices, choiceIndex(q.Choices, def))
	if err != nil {
		return nil, err
	}
	return q.Choices[idx], nil
}

// selectFromList presents a numbered list and returns the selected index.
// An empty answer picks def when it is a valid index.
func selectFromList(c *Console, prompt string, items []string, def int) (int, error) {
	fmt.Fprintf(c.Out, "%s %s\n", markText("?"), prompt)
	for i, item := range items {
		fmt.Fprintf(c.Out, "  %d) %s\n", i+1, item)
	}
	if def >= 0 {
		fmt.Fprintf(c.Out, "Enter number [1-%d] %s: ", len(items), defaultText(fmt.Sprintf("(%d)", def+1)))
	} else {
		fmt.Fprintf(c.Out, "Enter number [1-%d]: ", len(items))
	}

	line, err := c.readLine()
	if err != nil {
		return 0, fmt.Errorf("reading selection: %w", err)
	}
	if line == "" && def >= 0 {
		return def, nil
	}

	num, err := strconv.Atoi(line)
	if err != nil || num < 1 || num > len(items) {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", line, len(items))
	}
	return num - 1, nil
}

func choiceIndex(choices []string, def any) int {
	if def == nil {
		return -1
	}
	s := fmt.Sprint(def)
	for i, c := range choices {
		if c == s {
			return i
		}
	}
	return -1
}

// defaultAnswer is the answer used when the user gives none.
func defaultAnswer(q provision.Question, def any) any {
	switch q.Type {
	case provision.QuestionConfirm:
		return truthy(def)
	case provision.QuestionList:
		if i := choiceIndex(q.Choices, def); i >= 0 {
			return q.Choices[i]
		}
		if len(q.Choices) > 0 {
			return q.Choices[0]
		}
		return ""
	default:
		if def == nil {
			return ""
		}
		return fmt.Sprint(def)
	}
}

func parseYesNo(s string) (yes, ok bool) {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}

type evalResult struct {
	v   any
	err error
}

// eval runs ev asynchronously and waits for it or for ctx to end.
func eval(ctx context.Context, ev provision.Evaluator, args ...any) (any, error) {
	if ev == nil {
		return nil, nil
	}
	ch := make(chan evalResult, 1)
	provision.Async(ctx, ev, func(v any, err error) {
		ch <- evalResult{v, err}
	}, args...)
	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
