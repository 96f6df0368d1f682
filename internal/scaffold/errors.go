package scaffold

import "errors"

var (
	// ErrSourceNotFound indicates the template source directory does not exist.
	ErrSourceNotFound = errors.New("template source not found")

	// ErrBadPattern indicates an exclusion glob could not be parsed.
	ErrBadPattern = errors.New("invalid exclude pattern")

	// ErrUnreadableEntry indicates a template entry could not be resolved,
	// typically a dangling symlink.
	ErrUnreadableEntry = errors.New("unreadable template entry")

	// ErrSymlinkLoop indicates a symlinked directory points back at one of
	// its own ancestors.
	ErrSymlinkLoop = errors.New("symlink loop in template")
)
