// Package filesys provides small filesystem helpers for validating a
// database file path before the engine attempts to open it.
package filesys

import (
	"errors"
	"os"
)

// ErrIsDir indicates a path that was expected to be a regular file turned
// out to be a directory.
var ErrIsDir = errors.New("path is a directory, not a file")

// Exists checks if a file or directory at the given path exists. It
// returns true if the path exists, false if it does not, and an error if
// there's any other issue checking its status.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Size returns the byte size of the regular file at path, returning
// ErrIsDir if path names a directory instead.
func Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return 0, ErrIsDir
	}
	return info.Size(), nil
}
