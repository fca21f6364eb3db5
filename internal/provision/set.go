package provision

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Set is an ordered mapping of project-relative paths to entries.
// Iteration order is the order in which paths were first added.
type Set struct {
	order   []string
	entries map[string]Entry
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{entries: make(map[string]Entry)}
}

// Add stores e under p. Re-adding a path replaces its entry in place.
func (s *Set) Add(p string, e Entry) *Set {
	if s.entries == nil {
		s.entries = make(map[string]Entry)
	}
	p = cleanPath(p)
	if _, ok := s.entries[p]; !ok {
		s.order = append(s.order, p)
	}
	s.entries[p] = e
	return s
}

// Get returns the entry stored under p.
func (s *Set) Get(p string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	e, ok := s.entries[cleanPath(p)]
	return e, ok
}

// Len returns the number of entries.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Paths returns the paths in iteration order.
func (s *Set) Paths() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Each calls fn for every entry in order, stopping at the first error.
func (s *Set) Each(fn func(p string, e Entry) error) error {
	if s == nil {
		return nil
	}
	for _, p := range s.order {
		if err := fn(p, s.entries[p]); err != nil {
			return err
		}
	}
	return nil
}

// Pick returns a new Set holding only the given paths, in s's order.
func (s *Set) Pick(paths []string) *Set {
	want := make(map[string]bool, len(paths))
	for _, p := range paths {
		want[cleanPath(p)] = true
	}
	out := NewSet()
	for _, p := range s.Paths() {
		if want[p] {
			out.Add(p, s.entries[p])
		}
	}
	return out
}

// Validate checks that every path stays inside the project directory.
func (s *Set) Validate() error {
	return s.Each(func(p string, _ Entry) error {
		switch {
		case p == "." || p == "":
			return fmt.Errorf("entry path %q names the project root", p)
		case path.IsAbs(p) || filepath.IsAbs(p):
			return fmt.Errorf("entry path %q must be relative", p)
		case p == ".." || strings.HasPrefix(p, "../"):
			return fmt.Errorf("entry path %q escapes the project directory", p)
		}
		return nil
	})
}

func cleanPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}
