// Package surface provides input surfaces that captured text is read from.
package surface

import (
	"fmt"
	"os"

	"github.com/runoshun/braindump/internal/domain"
)

// Ensure File implements domain.InputSurface.
var _ domain.InputSurface = (*File)(nil)

// File is a draft file that is emptied once its lines have been captured.
type File struct {
	path string
}

// NewFile creates a File surface for path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Read returns the current content of the file.
func (f *File) Read() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.path, err)
	}
	return string(data), nil
}

// Clear truncates the file, keeping it in place.
func (f *File) Clear() error {
	if err := os.Truncate(f.path, 0); err != nil {
		return fmt.Errorf("clear %s: %w", f.path, err)
	}
	return nil
}
