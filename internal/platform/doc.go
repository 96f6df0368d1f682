// Package platform isolates the few OS-specific file operations the
// scaffolder needs around permission bits. Copied files keep their mode and
// generated processing scripts get the executable bit.
package platform
