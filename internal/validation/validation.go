// Package validation provides filesystem and settings validation helpers.
package validation

import (
	"fmt"
	"os"
)

// ValidateFile verifies a path exists and is a regular file. When
// createIfMissing is set, an empty file is created in its place.
func ValidateFile(path string, createIfMissing bool) (os.FileInfo, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return nil, fmt.Errorf("path %q is a directory, should be a file", path)
		}
		return info, nil
	case os.IsNotExist(err) && createIfMissing:
		f, createErr := os.Create(path)
		if createErr != nil {
			return nil, fmt.Errorf("failed to create file %q: %w", path, createErr)
		}
		if closeErr := f.Close(); closeErr != nil {
			return nil, closeErr
		}
		return os.Stat(path)
	default:
		return nil, err
	}
}

// ValidateDirectory verifies a path exists and is a directory. When
// createIfMissing is set, the directory tree is created.
func ValidateDirectory(path string, createIfMissing bool) (os.FileInfo, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, fmt.Errorf("path %q is a file, should be a directory", path)
		}
		return info, nil
	case os.IsNotExist(err) && createIfMissing:
		if mkErr := os.MkdirAll(path, 0755); mkErr != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", path, mkErr)
		}
		return os.Stat(path)
	default:
		return nil, err
	}
}
