package fsys

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// FS adapts a billy.Filesystem to the engine's file operations.
type FS struct {
	fs   billy.Filesystem
	root string

	// mu serializes access for backends that are not safe for concurrent use.
	mu *sync.Mutex
	// modes records permission bits applied to an in-memory tree.
	modes map[string]os.FileMode
}

// OS returns a file system rooted at dir on the local disk.
func OS(dir string) *FS {
	return &FS{fs: osfs.New(dir), root: dir}
}

// Memory returns an empty in-memory file system.
func Memory() *FS {
	return &FS{fs: memfs.New(), mu: &sync.Mutex{}, modes: map[string]os.FileMode{}}
}

// Billy returns the underlying billy file system.
func (f *FS) Billy() billy.Filesystem { return f.fs }

// Root is the directory an OS file system is rooted at, empty for memory.
func (f *FS) Root() string { return f.root }

func (f *FS) lock() func() {
	if f.mu == nil {
		return func() {}
	}
	f.mu.Lock()
	return f.mu.Unlock
}

// ReadFile returns the contents of name.
func (f *FS) ReadFile(name string) ([]byte, error) {
	defer f.lock()()
	return util.ReadFile(f.fs, name)
}

// WriteFile replaces the contents of name, creating it with perm if absent.
func (f *FS) WriteFile(name string, data []byte, perm os.FileMode) error {
	defer f.lock()()
	return util.WriteFile(f.fs, name, data, perm)
}

// MkdirAll creates name and any missing parents. An existing directory is
// not an error.
func (f *FS) MkdirAll(name string, perm os.FileMode) error {
	defer f.lock()()
	if name == "" || name == "." {
		if f.root != "" {
			return os.MkdirAll(f.root, perm)
		}
		return nil
	}
	if err := f.fs.MkdirAll(name, perm); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	return nil
}

// Chmod sets permission bits on name. On Windows this is a no-op because
// Windows does not support Unix-style permission bits.
func (f *FS) Chmod(name string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	if f.root != "" {
		return os.Chmod(filepath.Join(f.root, filepath.FromSlash(name)), mode)
	}
	defer f.lock()()
	if _, err := f.fs.Stat(name); err != nil {
		return fmt.Errorf("chmod %s: %w", name, err)
	}
	if f.modes != nil {
		f.modes[filepath.ToSlash(filepath.Clean(name))] = mode
		return nil
	}
	ch, ok := f.fs.(billy.Change)
	if !ok {
		return fmt.Errorf("chmod %s: %w", name, billy.ErrNotSupported)
	}
	return ch.Chmod(name, mode)
}

// Mode reports the permission bits of name. For in-memory trees only modes
// set through Chmod are known.
func (f *FS) Mode(name string) (os.FileMode, bool) {
	if f.root != "" {
		info, err := os.Stat(filepath.Join(f.root, filepath.FromSlash(name)))
		if err != nil {
			return 0, false
		}
		return info.Mode().Perm(), true
	}
	defer f.lock()()
	m, ok := f.modes[filepath.ToSlash(filepath.Clean(name))]
	return m, ok
}

// Stat reports file info for name.
func (f *FS) Stat(name string) (os.FileInfo, error) {
	defer f.lock()()
	return f.fs.Stat(name)
}
