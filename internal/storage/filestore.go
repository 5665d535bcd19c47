package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("file not found")

// FileStore persists uploaded files under a single directory. Files are
// written once and never deleted here; uniqueness of the stored name is
// enforced with O_EXCL.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Dir() string { return s.dir }

// Save streams r into a new file named storedName. The name must come
// from GenerateStoredName; a colliding or traversal name is an error.
func (s *FileStore) Save(storedName string, r io.Reader) (int64, error) {
	path, err := s.path(storedName)
	if err != nil {
		return 0, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create upload: %w", err)
	}
	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("write upload: %w", err)
	}
	return written, nil
}

// Open returns the stored file for serving along with its size.
func (s *FileStore) Open(storedName string) (*os.File, os.FileInfo, error) {
	path, err := s.path(storedName)
	if err != nil {
		return nil, nil, ErrNotFound
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, info, nil
}

// path rejects any name that would escape the upload directory.
func (s *FileStore) path(storedName string) (string, error) {
	if storedName == "" || storedName != filepath.Base(storedName) || strings.Contains(storedName, "..") {
		return "", fmt.Errorf("invalid stored name %q", storedName)
	}
	return filepath.Join(s.dir, storedName), nil
}

// NewUniqueToken returns a collision-resistant token for stored names:
// millisecond timestamp plus a random UUID.
func NewUniqueToken() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.New().String())
}

// GenerateStoredName combines a uniqueness token with a sanitized version
// of the client-supplied name. Pure: same inputs, same output.
func GenerateStoredName(originalName, token string) string {
	return token + "_" + sanitizeFileName(originalName)
}

func sanitizeFileName(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.TrimSpace(name)
	if name == "" || name == "." {
		name = "file"
	}
	return name
}
