package manifest

import (
	"fmt"
	"strings"

	"github.com/packagesmith/packagesmith/internal/provision"
)

// Load validates, parses, and converts the manifest at path. version is the
// running engine version checked against the manifest's requires field.
func Load(path, version string) (*provision.Set, error) {
	res, err := ValidateFile(path)
	if err != nil {
		return nil, &provision.Error{Code: provision.CodeManifest, Err: err}
	}
	if !res.Valid {
		return nil, &provision.Error{Code: provision.CodeManifest, Err: &InvalidError{File: path, Issues: res.Issues}}
	}

	m, err := Parse(path)
	if err != nil {
		return nil, &provision.Error{Code: provision.CodeManifest, Err: err}
	}
	if err := CheckRequires(m.Requires, version); err != nil {
		return nil, &provision.Error{Code: provision.CodeManifest, Err: fmt.Errorf("%s: %w", path, err)}
	}
	set, err := ToSet(m)
	if err != nil {
		return nil, &provision.Error{Code: provision.CodeManifest, Err: fmt.Errorf("%s: %w", path, err)}
	}
	return set, nil
}

// LoadAll loads every manifest and merges them left to right.
func LoadAll(paths []string, version string) (*provision.Set, error) {
	sets := make([]*provision.Set, 0, len(paths))
	for _, p := range paths {
		s, err := Load(p, version)
		if err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	return provision.Combine(sets...), nil
}

// InvalidError lists the schema violations of a manifest file.
type InvalidError struct {
	File   string
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.String()
	}
	return fmt.Sprintf("%s is not a valid manifest: %s", e.File, strings.Join(parts, "; "))
}
