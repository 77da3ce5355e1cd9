package controllers

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	uuid "github.com/twinj/uuid"
)

// Storage Uploaded image files, laid out as <root>/images/<project>/<uuid>.<ext>
type Storage struct {
	root string
}

// NewStorage Create the storage tree under root
func NewStorage(root string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Join(root, "images"), 0o755); err != nil {
		return nil, fmt.Errorf("create storage: %w", err)
	}
	return &Storage{root: root}, nil
}

// Root Directory served under /static
func (s *Storage) Root() string {
	return s.root
}

func (s *Storage) projectDir(projectID string) string {
	return filepath.Join(s.root, "images", filepath.Base(projectID))
}

// storedName Random file name keeping the lowercased extension, bin when the
// name has no dot. A trailing dot keeps an empty extension.
func storedName(original string) string {
	ext := "bin"
	if i := strings.LastIndex(original, "."); i >= 0 {
		ext = strings.ToLower(original[i+1:])
	}
	return fmt.Sprintf("%s.%s", uuid.NewV4().String(), ext)
}

// Save Write the upload to the project directory and return its path
func (s *Storage) Save(projectID string, originalName string, content io.Reader) (string, error) {
	dir := s.projectDir(projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, storedName(originalName))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Remove Delete a stored file; a missing file is not an error
func (s *Storage) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// RemoveProject Delete the project directory with everything in it
func (s *Storage) RemoveProject(projectID string) error {
	return os.RemoveAll(s.projectDir(projectID))
}
