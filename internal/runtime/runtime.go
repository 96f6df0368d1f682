package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/uniinit-labs/uniinit/internal/platform"
)

// Output captures the result of a script execution.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Common script labels.
const (
	LabelPreProcessing  = "pre-processing"
	LabelPostProcessing = "post-processing"
)

const (
	defaultShebang = "#!/bin/sh\n"
	tempPattern    = "uniinit-*.sh"

	// A freshly written script can still be held open for writing by a
	// concurrently forked child; exec then fails with ETXTBSY for a moment.
	busyRetries = 5
	busyBackoff = 20 * time.Millisecond
)

// Runner executes processing scripts.
type Runner struct {
	// Logger receives script diagnostics. Nil discards them.
	Logger *slog.Logger
	// TempDir holds the transient script files. Empty uses os.TempDir().
	TempDir string
	// Stdout and Stderr, when set, receive a live copy of the script output
	// in addition to the captured buffers.
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner returns a Runner logging to logger.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{Logger: logger}
}

func (r *Runner) logger() *slog.Logger {
	if r == nil || r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

// Run writes script to a temporary executable and runs it to completion.
// A non-zero exit returns the captured output together with a *ScriptError.
// The temporary file is removed on every path.
func (r *Runner) Run(ctx context.Context, script, label string) (*Output, error) {
	log := r.logger().With("script", label)

	path, err := r.writeScript(script)
	if err != nil {
		return nil, fmt.Errorf("preparing %s script: %w", label, err)
	}
	defer os.Remove(path)

	var stdoutBuf, stderrBuf bytes.Buffer
	stdout := io.Writer(&stdoutBuf)
	if r.Stdout != nil {
		stdout = io.MultiWriter(r.Stdout, &stdoutBuf)
	}
	stderr := io.Writer(&stderrBuf)
	if r.Stderr != nil {
		stderr = io.MultiWriter(r.Stderr, &stderrBuf)
	}

	log.Debug("running script", "path", path)
	start := time.Now()
	err = runWithRetry(ctx, path, stdout, stderr)

	output := &Output{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		Duration: time.Since(start),
	}

	if strings.TrimSpace(output.Stderr) != "" {
		log.Warn("script wrote to stderr", "stderr", strings.TrimSpace(output.Stderr))
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			log.Error("script failed", "exit_code", output.ExitCode, "duration", output.Duration)
			return output, &ScriptError{Label: label, ExitCode: output.ExitCode, Stderr: output.Stderr}
		}
		return output, fmt.Errorf("executing %s script: %w", label, err)
	}

	log.Debug("script finished", "duration", output.Duration)
	return output, nil
}

func (r *Runner) writeScript(script string) (string, error) {
	f, err := os.CreateTemp(r.TempDir, tempPattern)
	if err != nil {
		return "", err
	}
	path := f.Name()

	if !strings.HasPrefix(script, "#!") {
		script = defaultShebang + script
	}
	if _, err := f.WriteString(script); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	if err := platform.MakeExecutable(path); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func runWithRetry(ctx context.Context, path string, stdout, stderr io.Writer) error {
	var err error
	for attempt := 0; attempt < busyRetries; attempt++ {
		cmd := exec.CommandContext(ctx, path)
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		err = cmd.Run()
		if !errors.Is(err, syscall.ETXTBSY) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(busyBackoff):
		}
	}
	return err
}
