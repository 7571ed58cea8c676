package fsops

import (
	"errors"
	"os"
)

// ErrNotAFile is returned when a read targets a directory.
var ErrNotAFile = errors.New("path is a directory")

// ReadFile returns the full contents of the file at path.
func ReadFile(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", &os.PathError{Op: "read", Path: path, Err: ErrNotAFile}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
