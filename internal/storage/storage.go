// Package storage keeps the documents (notas fiscais) attached to
// transactions. Objects are addressed by a relative slash-separated path.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

var (
	ErrInvalidPath = errors.New("invalid object path")
	ErrNotFound    = errors.New("object not found")
)

type Store interface {
	Upload(ctx context.Context, objectPath string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, objectPath string) (io.ReadCloser, error)
}

// Presigner is implemented by stores that can hand out temporary download URLs.
type Presigner interface {
	PresignGet(ctx context.Context, objectPath string, ttl time.Duration) (string, error)
}

// ObjectPath names an upload as <user>/<unix-ms>.<ext>, keeping the extension
// of the original filename.
func ObjectPath(userID, filename string, now time.Time) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		return fmt.Sprintf("%s/%d", userID, now.UnixMilli())
	}
	return fmt.Sprintf("%s/%d.%s", userID, now.UnixMilli(), ext)
}

// cleanPath rejects absolute paths and anything escaping the store root.
func cleanPath(p string) (string, error) {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}

// OwnedBy reports whether objectPath sits under the user's prefix.
func OwnedBy(objectPath, userID string) bool {
	cleaned, err := cleanPath(objectPath)
	return err == nil && strings.HasPrefix(cleaned, userID+"/")
}
