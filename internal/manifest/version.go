package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckRequires reports an error when version does not satisfy constraint.
// An empty constraint always passes, as does a non-semver development build.
func CheckRequires(constraint, version string) error {
	if strings.TrimSpace(constraint) == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing requires constraint %q: %w", constraint, err)
	}
	v, err := parseSemver(version)
	if err != nil {
		return nil
	}
	if ok, errs := c.Validate(v); !ok {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("engine version %s does not satisfy %q: %s", v, constraint, strings.Join(msgs, "; "))
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
