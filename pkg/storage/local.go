package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when a stored blob does not exist on disk
var ErrNotFound = fmt.Errorf("blob not found")

// LocalStorage persists blobs on the local filesystem under a base directory.
// Item images use it; the stored path is what gets recorded on the Image row.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates a local storage rooted at baseDir
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Store writes data under the suggested name and returns the stored path
func (s *LocalStorage) Store(data []byte, name string) (string, error) {
	path := filepath.Join(s.baseDir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store blob: %w", err)
	}
	return path, nil
}

// Retrieve reads a previously stored blob
func (s *LocalStorage) Retrieve(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return data, nil
}

// Remove deletes a stored blob, ignoring blobs already gone
func (s *LocalStorage) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove blob: %w", err)
	}
	return nil
}
