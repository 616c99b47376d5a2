// Package path resolves the file paths given by the user.
// Relative paths are resolved against the working directory.
package path

import (
	"fmt"
	"os"
	"path/filepath"
)

// CurrentDir returns the working directory of the process
func CurrentDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("os.Getwd: %w", err)
	}
	return dir, nil
}

// AbsDir returns the absolute path.
// If the path is relative, then it's joined to the currentDir.
func AbsDir(currentDir string, filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}

	return filepath.Join(currentDir, filePath)
}

// Abs resolves the path against the working directory.
func Abs(filePath string) (string, error) {
	currentDir, err := CurrentDir()
	if err != nil {
		return "", err
	}

	return AbsDir(currentDir, filePath), nil
}

// FileExist returns true if the file exists. if the path is a directory, it will return an error.
func FileExist(filePath string) (bool, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("os.Stat('%s'): %w", filePath, err)
	}

	if info.IsDir() {
		return false, fmt.Errorf("'%s' is a directory", filePath)
	}

	return true, nil
}
