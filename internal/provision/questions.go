package provision

import (
	"context"
	"log/slog"
)

// QuestionType selects how the prompt layer asks a question.
type QuestionType string

const (
	QuestionInput   QuestionType = "input"
	QuestionConfirm QuestionType = "confirm"
	QuestionList    QuestionType = "list"
)

// Evaluator computes a dynamic question property. The prompt layer passes its
// own context arguments; evaluators bound by GatherQuestions receive the
// project path appended as the final argument.
type Evaluator func(ctx context.Context, args ...any) (any, error)

// Completion receives the result of an asynchronously evaluated Evaluator.
type Completion func(value any, err error)

// Question is one interactive question declared by an entry.
type Question struct {
	Name    string
	Message string
	Type    QuestionType
	Choices []string
	Default Evaluator
	When    Evaluator
}

// Value returns an Evaluator that always yields v.
func Value(v any) Evaluator {
	return func(context.Context, ...any) (any, error) { return v, nil }
}

// Bind returns an Evaluator that calls ev with projectPath appended to its
// arguments. A nil ev stays nil.
func Bind(ev Evaluator, projectPath string) Evaluator {
	if ev == nil {
		return nil
	}
	return func(ctx context.Context, args ...any) (any, error) {
		bound := make([]any, 0, len(args)+1)
		bound = append(bound, args...)
		bound = append(bound, projectPath)
		return ev(ctx, bound...)
	}
}

// Async runs ev on its own goroutine and delivers the result to done.
func Async(ctx context.Context, ev Evaluator, done Completion, args ...any) {
	go func() {
		done(ev(ctx, args...))
	}()
}

// GatherQuestions collects every entry's questions in set order, keeps the
// first question of each name, and binds Default and When to projectPath.
func GatherQuestions(projectPath string, set *Set, logger *slog.Logger) []Question {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("gathering questions to ask user")

	var all []Question
	_ = set.Each(func(_ string, e Entry) error {
		all = append(all, e.Questions...)
		return nil
	})

	questions := uniqueQuestions(all)
	for i := range questions {
		questions[i].Default = Bind(questions[i].Default, projectPath)
		questions[i].When = Bind(questions[i].When, projectPath)
	}
	logger.Debug("found questions to ask", "count", len(questions))
	return questions
}

func uniqueQuestions(qs []Question) []Question {
	out := make([]Question, 0, len(qs))
	seen := make(map[string]bool, len(qs))
	for _, q := range qs {
		if seen[q.Name] {
			continue
		}
		seen[q.Name] = true
		out = append(out, q)
	}
	return out
}
