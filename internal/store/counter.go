// Package store holds the persisted run state: the compilation counter and
// atomic file writing shared with the token cache.
package store

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"clipcomp/internal/utils/logging"
)

// FileCounter persists the compilation number as a single integer in a plain
// text file. A missing file reads as 0; garbage contents reset to 0 with a
// warning rather than halting the run.
type FileCounter struct {
	Path string
}

// NewFileCounter returns a counter backed by the given file path.
func NewFileCounter(path string) *FileCounter {
	return &FileCounter{Path: path}
}

// Read returns the current compilation number, or 0 if no prior state exists.
func (fc *FileCounter) Read() (int, error) {
	data, err := os.ReadFile(fc.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("counter file %q unreadable: %w", fc.Path, err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		logging.W("Counter file %q contained invalid data, resetting to 0", fc.Path)
		return 0, nil
	}
	if n < 0 {
		logging.W("Counter file %q contained negative value %d, resetting to 0", fc.Path, n)
		return 0, nil
	}
	return n, nil
}

// Increment adds one to the stored counter and persists it durably before
// returning. Must only be called after a successful publish.
func (fc *FileCounter) Increment() (int, error) {
	current, err := fc.Read()
	if err != nil {
		return 0, err
	}
	next := current + 1

	w, err := NewAtomicWriter(fc.Path)
	if err != nil {
		return 0, fmt.Errorf("counter write: %w", err)
	}
	if _, err := w.Write([]byte(strconv.Itoa(next))); err != nil {
		w.Abort()
		return 0, fmt.Errorf("counter write: %w", err)
	}
	if err := w.Commit(); err != nil {
		return 0, fmt.Errorf("counter write: %w", err)
	}
	return next, nil
}
