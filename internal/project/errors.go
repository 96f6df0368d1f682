// Package project models a single scaffolding request: the target framework,
// the user-supplied metadata and parameters, and the replacement map derived
// from them that every template file and manifest is rendered with.
package project

import "errors"

// Sentinel errors for the project package.
var (
	// ErrUnsupportedType indicates a project type outside the known framework set.
	ErrUnsupportedType = errors.New("unsupported project type")

	// ErrInvalidConfig indicates a project config is missing a required field
	// or could not be decoded.
	ErrInvalidConfig = errors.New("invalid project config")
)
