package runtime

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrScriptFailed indicates a processing script exited with a non-zero status.
	ErrScriptFailed = errors.New("processing script failed")

	// ErrWaitTimeout indicates a Job did not finish within the wait bound.
	// The script keeps running.
	ErrWaitTimeout = errors.New("timed out waiting for processing script")
)

// ScriptError carries the exit status and captured stderr of a failed script.
type ScriptError struct {
	Label    string
	ExitCode int
	Stderr   string
}

func (e *ScriptError) Error() string {
	msg := fmt.Sprintf("%s failed with exit code %d", e.Label, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// Unwrap lets errors.Is match ErrScriptFailed.
func (e *ScriptError) Unwrap() error { return ErrScriptFailed }
