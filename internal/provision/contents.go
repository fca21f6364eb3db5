package provision

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// GatherCurrentContents reads every file entry concurrently. Unreadable or
// missing files, and directory entries, yield "".
func GatherCurrentContents(ctx context.Context, fsys FS, set *Set, logger *slog.Logger) (map[string]string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	paths := set.Paths()
	logger.Debug("gathering existing contents", "files", len(paths))

	var mu sync.Mutex
	current := make(map[string]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range paths {
		e, _ := set.Get(p)
		if e.Kind != KindFile {
			mu.Lock()
			current[p] = ""
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fsys.ReadFile(p)
			if err != nil {
				logger.Debug("no current contents", "path", p, "error", err)
				data = nil
			}
			mu.Lock()
			current[p] = string(data)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return current, nil
}

// ResolveContents computes the desired contents of every file entry. Entries
// without contents get no value. A missing current value is treated as "".
func ResolveContents(set *Set, current map[string]string, answers Answers, logger *slog.Logger) (map[string]string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("gathering new file contents", "provisions", set.Len())

	next := make(map[string]string, set.Len())
	err := set.Each(func(p string, e Entry) error {
		if e.Kind != KindFile {
			return nil
		}
		text, ok, err := e.Contents.Resolve(current[p], answers)
		if err != nil {
			return &Error{Code: CodeContent, Path: p, Err: err}
		}
		if ok {
			logger.Debug("determined new file contents", "path", p)
			next[p] = text
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}
