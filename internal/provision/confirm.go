package provision

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
)

// Asker collects answers to a batch of questions.
type Asker interface {
	Ask(ctx context.Context, questions []Question) (Answers, error)
}

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

var bannerText = color.New(color.FgYellow).SprintFunc()

// ConfirmWrites shows each changed file's diff and asks whether to write it.
// Unchanged entries and non-file entries are skipped without a prompt. The
// returned paths are in set order.
func ConfirmWrites(ctx context.Context, set *Set, records map[string]Record, c Confirmer, out io.Writer, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("asking user for permission to write files")

	var confirmed []string
	err := set.Each(func(p string, e Entry) error {
		rec := records[p]
		if rec.Current == rec.Next {
			logger.Debug("skipping, contents are identical", "path", p)
			return nil
		}
		if e.Kind != KindFile {
			logger.Debug("skipping, not a file", "path", p, "kind", e.Kind)
			return nil
		}

		verb, question := "change", fmt.Sprintf("Overwrite %s with these changes?", p)
		if rec.Current == "" {
			verb, question = "add", fmt.Sprintf("Create %s with these contents?", p)
		}
		fmt.Fprintln(out, bannerText(fmt.Sprintf("\nProvisioner wants to %s %s:", verb, p)))
		fmt.Fprintln(out, rec.Diff.Text)

		ok, err := c.Confirm(ctx, question)
		if err != nil {
			return &Error{Code: CodePrompt, Path: p, Err: err}
		}
		if ok {
			confirmed = append(confirmed, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}
