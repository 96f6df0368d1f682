package registry

import (
	"maps"
	"slices"

	"github.com/uniinit-labs/uniinit/internal/project"
)

// Policy describes how one template family is validated and copied.
type Policy struct {
	Type project.Type
	// Dir is the template directory name under the catalog root.
	Dir string
	// IncludeHidden copies dot-files from the template.
	IncludeHidden bool
	// Required parameters must be present.
	Required []string
	// Allowed, when non-empty, is the complete set of accepted parameters.
	Allowed []string
	// Defaults are injected for missing parameters before validation.
	Defaults map[string]any
	// TestSetup enables copying the template's test-setup directory.
	TestSetup bool
}

// TemplateDir returns Dir, or the type name when Dir is empty.
func (p Policy) TemplateDir() string {
	if p.Dir != "" {
		return p.Dir
	}
	return string(p.Type)
}

// ApplyDefaults fills missing keys of params from p.Defaults in place and
// returns the keys it set.
func (p Policy) ApplyDefaults(params map[string]any) []string {
	var applied []string
	for _, k := range slices.Sorted(maps.Keys(p.Defaults)) {
		if _, ok := params[k]; ok {
			continue
		}
		params[k] = p.Defaults[k]
		applied = append(applied, k)
	}
	return applied
}

// Validate checks params against the required set and the allow-list.
func (p Policy) Validate(params map[string]any) error {
	var missing []string
	for _, k := range p.Required {
		if _, ok := params[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Type: string(p.Type), Params: missing, Wrapped: ErrMissingParameter}
	}

	if len(p.Allowed) == 0 {
		return nil
	}
	var unknown []string
	for _, k := range slices.Sorted(maps.Keys(params)) {
		if !slices.Contains(p.Allowed, k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		return &ValidationError{Type: string(p.Type), Params: unknown, Wrapped: ErrUnknownParameter}
	}
	return nil
}
