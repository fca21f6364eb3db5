package provision

import (
	"context"
	"log/slog"
	"path"

	"golang.org/x/sync/errgroup"
)

// WriteAll materializes the confirmed entries of set. Files get their parent
// directories created and their new contents written; directories are
// created. Permissions are applied after the entry's own write. Entries are
// written concurrently and the first failure is returned.
func WriteAll(ctx context.Context, fsys FS, set *Set, next map[string]string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("writing files", "count", set.Len())

	g, ctx := errgroup.WithContext(ctx)
	_ = set.Each(func(p string, e Entry) error {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeEntry(fsys, p, e, next[p], logger)
		})
		return nil
	})
	return g.Wait()
}

func writeEntry(fsys FS, p string, e Entry, contents string, logger *slog.Logger) error {
	switch e.Kind {
	case KindFile:
		logger.Debug("writing file contents", "path", p)
		if dir := path.Dir(p); dir != "." {
			if err := fsys.MkdirAll(dir, dirPerm); err != nil {
				return &Error{Code: CodeWrite, Path: p, Err: err}
			}
		}
		if err := fsys.WriteFile(p, []byte(contents), filePerm); err != nil {
			return &Error{Code: CodeWrite, Path: p, Err: err}
		}
	case KindDirectory:
		logger.Debug("ensuring directory exists", "path", p)
		if err := fsys.MkdirAll(p, dirPerm); err != nil {
			return &Error{Code: CodeWrite, Path: p, Err: err}
		}
	}
	if e.Permissions != nil {
		if err := fsys.Chmod(p, *e.Permissions); err != nil {
			return &Error{Code: CodeWrite, Path: p, Err: err}
		}
	}
	return nil
}
