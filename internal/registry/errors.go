package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotRegistered indicates no policy exists for a project type.
	ErrNotRegistered = errors.New("no template registered for project type")

	// ErrMissingParameter indicates a required parameter was not supplied.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrUnknownParameter indicates a parameter outside the family's allow-list.
	ErrUnknownParameter = errors.New("unknown parameter")
)

// ValidationError names the offending parameters for one project type.
type ValidationError struct {
	Type    string
	Params  []string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s template: %s: %s", e.Type, e.Wrapped, strings.Join(e.Params, ", "))
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error { return e.Wrapped }
