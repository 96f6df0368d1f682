// Package runtime executes template processing scripts. A script is written
// to a temporary executable file, run with the caller's working directory and
// environment, and removed afterwards. Run blocks; Start launches the same
// execution on its own goroutine and returns a Job whose completion can be
// awaited with a timeout.
package runtime
