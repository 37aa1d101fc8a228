// Package storage writes raw files into a single flat directory.
//
// Files are write-once: Create never replaces an existing file and reports
// ErrExists instead, so callers can pick another name.
package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrExists      = errors.New("file already exists")
	ErrInvalidName = errors.New("invalid file name")
)

type FileStore struct {
	root string
	opts Options
}

// NewFileStore returns a store rooted at root, creating the directory if it is missing.
func NewFileStore(root string, opts ...OptionFunc) (*FileStore, error) {
	options := defaultOpts
	for _, opt := range opts {
		opt(&options)
	}

	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("storage root cannot be empty")
	}
	root = filepath.Clean(root)
	if err := os.MkdirAll(root, options.DirMode); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", root, err)
	}

	return &FileStore{
		root: root,
		opts: options,
	}, nil
}

func (s *FileStore) Root() string {
	return s.root
}

// Path returns the location of name inside the store without touching the filesystem.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.root, name)
}

// Create writes all of data to a new file called name and returns its path.
// If a file with that name already exists nothing is written and ErrExists is returned.
func (s *FileStore) Create(name string, data io.Reader) (string, int64, error) {
	if err := ValidateName(name); err != nil {
		return "", 0, err
	}

	path := s.Path(name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, s.opts.FileMode)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", 0, fmt.Errorf("%w: %s", ErrExists, name)
		}
		return "", 0, fmt.Errorf("failed to create file %s: %w", path, err)
	}

	written, err := io.Copy(f, data)
	if err != nil {
		_ = f.Close()
		s.discard(path)
		return "", 0, fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		s.discard(path)
		return "", 0, fmt.Errorf("failed to close file %s: %w", path, err)
	}

	return path, written, nil
}

// Open opens a previously created file for reading.
func (s *FileStore) Open(name string) (*os.File, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", name, err)
	}
	return f, nil
}

func (s *FileStore) discard(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("failed to remove partially written file", "path", path, "error", err)
	}
}

// ValidateName rejects names that would escape the flat store directory.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}
