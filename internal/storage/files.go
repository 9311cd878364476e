// Package storage keeps generated PDF files on disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
)

// validID matches IDs that are safe to use as a file name.
var validID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// InvalidNameError is returned for IDs or file names that could escape the
// storage directory.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid file name %q", e.Name)
}

// Files stores PDFs as {dir}/{id}.pdf.
type Files struct {
	dir string
}

// NewFiles returns file storage rooted at dir, creating it if needed.
func NewFiles(dir string) (*Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create resume directory: %w", err)
	}
	return &Files{dir: dir}, nil
}

// Dir returns the storage directory.
func (f *Files) Dir() string { return f.dir }

// FileName returns the stored file name for id.
func FileName(id string) (string, error) {
	if !validID.MatchString(id) {
		return "", &InvalidNameError{Name: id}
	}
	return id + ".pdf", nil
}

// Save writes data for id and returns the file name it was stored under.
func (f *Files) Save(id string, data []byte) (string, error) {
	name, err := FileName(id)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(f.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return name, nil
}

// Path resolves a stored file name to its location on disk.
func (f *Files) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", &InvalidNameError{Name: name}
	}
	return filepath.Join(f.dir, name), nil
}

// Open opens a stored file for reading. A missing file yields an error
// matching os.ErrNotExist.
func (f *Files) Open(name string) (*os.File, error) {
	path, err := f.Path(name)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stored file %s: %w", name, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return file, nil
}

// Copy writes the stored file to w.
func (f *Files) Copy(w io.Writer, name string) error {
	file, err := f.Open(name)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	if _, err := io.Copy(w, file); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	return nil
}
