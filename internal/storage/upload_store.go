package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrDisallowedExtension is returned when an uploaded file's extension is not
// on the image allow-list.
var ErrDisallowedExtension = errors.New("file extension not allowed")

// allowedExtensions is the image allow-list for listing photos.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// UploadStore saves listing images to disk under a base directory. Each file
// is stored under a fresh UUID key so uploads can never collide, keeping the
// original name only as the extension.
type UploadStore struct {
	dir string
}

// NewUploadStore creates the base directory if missing.
func NewUploadStore(dir string) (*UploadStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadStore{dir: dir}, nil
}

// Dir returns the base directory the store writes to.
func (s *UploadStore) Dir() string {
	return s.dir
}

// Save validates the filename against the allow-list, writes the content
// under a UUID-based key, and returns that key.
func (s *UploadStore) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%q: %w", filename, ErrDisallowedExtension)
	}

	key := uuid.New().String() + ext
	out, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return key, nil
}
