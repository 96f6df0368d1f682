package platform

import (
	"errors"
	"io/fs"
	"os"
	"runtime"
)

// ExecutableMode is applied to generated shell scripts.
const ExecutableMode os.FileMode = 0755

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// MakeExecutable marks path as executable by its owner, group and others.
func MakeExecutable(path string) error {
	return Chmod(path, ExecutableMode)
}

// EnsureWritable adds the owner write bit to an existing file so it can be
// overwritten. A missing path is not an error.
func EnsureWritable(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if !info.Mode().IsRegular() || info.Mode().Perm()&0200 != 0 {
		return nil
	}
	return Chmod(path, info.Mode().Perm()|0200)
}
