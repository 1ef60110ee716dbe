package rules

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckVersion verifies that version satisfies the rule's requires
// constraint. Rules without a constraint accept any version, and so do
// development builds whose version is not semver (e.g. "dev").
func (r *Rule) CheckVersion(version string) error {
	if r.Requires == "" {
		return nil
	}

	c, err := semver.NewConstraint(r.Requires)
	if err != nil {
		return fmt.Errorf("rule %s: parsing requires %q: %w", r.Name, r.Requires, err)
	}

	v, err := parseSemver(version)
	if err != nil {
		return nil
	}

	if !c.Check(v) {
		return fmt.Errorf("rule %s requires version %s, running %s", r.Name, r.Requires, version)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
