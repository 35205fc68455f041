package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps objects below a directory on the local disk.
type FileStore struct {
	root string
}

func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) resolve(objectPath string) (string, error) {
	cleaned, err := cleanPath(objectPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

// Upload writes to a temp file and renames it into place so readers never see
// a partial object.
func (s *FileStore) Upload(ctx context.Context, objectPath string, r io.Reader, size int64, contentType string) error {
	dst, err := s.resolve(objectPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp object: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close object: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("store object: %w", err)
	}
	return nil
}

func (s *FileStore) Open(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	src, err := s.resolve(objectPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(src)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open object: %w", err)
	}
	return f, nil
}
