package runtime

import (
	"context"
	"time"
)

// Job is a script running on its own goroutine.
// Its result becomes visible once Done is closed.
type Job struct {
	Label string

	done   chan struct{}
	output *Output
	err    error
}

// Start launches script asynchronously. The execution is detached from ctx
// cancellation so the caller returning does not kill the script; values
// carried by ctx are preserved.
func (r *Runner) Start(ctx context.Context, script, label string) *Job {
	j := &Job{Label: label, done: make(chan struct{})}
	runCtx := context.WithoutCancel(ctx)

	go func() {
		defer close(j.done)
		j.output, j.err = r.Run(runCtx, script, label)
	}()
	return j
}

// Done is closed when the script has exited.
func (j *Job) Done() <-chan struct{} { return j.done }

// Finished reports whether the script has exited.
func (j *Job) Finished() bool {
	select {
	case <-j.done:
		return true
	default:
		return false
	}
}

// Err returns the script error once finished, nil before.
func (j *Job) Err() error {
	if !j.Finished() {
		return nil
	}
	return j.err
}

// Output returns the captured output once finished, nil before.
func (j *Job) Output() *Output {
	if !j.Finished() {
		return nil
	}
	return j.output
}

// Wait blocks until the script exits or timeout elapses, returning the
// script's error or ErrWaitTimeout. A non-positive timeout waits forever.
// Timing out never stops the script.
func (j *Job) Wait(timeout time.Duration) error {
	if timeout <= 0 {
		<-j.done
		return j.err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-j.done:
		return j.err
	case <-timer.C:
		return ErrWaitTimeout
	}
}

// WaitContext is Wait bounded by ctx instead of a duration.
func (j *Job) WaitContext(ctx context.Context) error {
	select {
	case <-j.done:
		return j.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
