package manifest

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// EnvironmentWarnings lists declared tool versions that are not valid semver
// constraints. Templates still load with such values; callers surface the
// warnings to the user.
func (i *InitInfo) EnvironmentWarnings() []string {
	var warnings []string
	for _, tool := range i.Env.Tools() {
		v := i.Env.Versions[tool]
		if v == "" {
			continue
		}
		if _, err := semver.NewConstraint(v); err != nil {
			warnings = append(warnings, fmt.Sprintf("env.%s: %q is not a version constraint", tool, v))
		}
	}
	return warnings
}

// Satisfies reports whether installed meets the version declared for tool.
// Tools without a declared version are always satisfied.
func (e Env) Satisfies(tool, installed string) (bool, error) {
	want := e.Versions[tool]
	if want == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(want)
	if err != nil {
		return false, fmt.Errorf("env.%s constraint %q: %w", tool, want, err)
	}
	v, err := semver.NewVersion(installed)
	if err != nil {
		return false, fmt.Errorf("installed %s version %q: %w", tool, installed, err)
	}
	return c.Check(v), nil
}
