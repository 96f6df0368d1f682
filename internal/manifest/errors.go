package manifest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrManifestNotFound indicates the template has no config.yml.
	ErrManifestNotFound = errors.New("template manifest not found")

	// ErrInvalidManifest indicates config.yml is not valid YAML or does not
	// satisfy the manifest schema.
	ErrInvalidManifest = errors.New("invalid template manifest")

	// ErrInvalidEntryPoint indicates an entry-point URL that cannot be parsed.
	ErrInvalidEntryPoint = errors.New("invalid entry point URL")
)

// ManifestError reports schema violations found in a manifest.
type ManifestError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *ManifestError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidManifest, e.Path, strings.Join(parts, "; "))
}

// Unwrap lets errors.Is match ErrInvalidManifest.
func (e *ManifestError) Unwrap() error { return ErrInvalidManifest }
