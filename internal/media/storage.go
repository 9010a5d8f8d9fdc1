package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gestionimagenes/backend/internal"
	"github.com/google/uuid"
)

// FileStore persists uploaded bytes under generated storage names.
type FileStore interface {
	Save(fh *multipart.FileHeader, storageName string) error
	Remove(storageName string) error
	Path(storageName string) (string, error)
}

// DiskStore writes uploads to a flat local directory. Storage names are
// always generated (uuid prefix), so concurrent uploads of files with the
// same client name cannot overwrite each other.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(fh *multipart.FileHeader, storageName string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, storageName))
	if err != nil {
		return fmt.Errorf("create %s: %w", storageName, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return fmt.Errorf("write %s: %w", storageName, err)
	}

	return dst.Close()
}

func (s *DiskStore) Remove(storageName string) error {
	return os.Remove(filepath.Join(s.dir, storageName))
}

// Path resolves a storage name to an on-disk path for serving. Names that
// escape the upload directory or do not exist yield a NotFound error.
func (s *DiskStore) Path(storageName string) (string, error) {
	if storageName == "" || storageName != filepath.Base(storageName) {
		return "", internal.NewNotFoundError("file not found", internal.ErrCodeFileNotFound)
	}

	p := filepath.Join(s.dir, storageName)
	if _, err := os.Stat(p); err != nil {
		return "", internal.NewNotFoundError("file not found", internal.ErrCodeFileNotFound)
	}
	return p, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename reduces a client-supplied filename to a safe flat name:
// path components are stripped and anything outside [A-Za-z0-9._-] collapses
// to underscores.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	return name
}

// NewStorageName generates the unique on-disk name for an upload. The uuid
// prefix is the collision guard; the sanitized original name is kept for
// readability.
func NewStorageName(originalName string) string {
	safe := SanitizeFilename(originalName)
	if safe == "" {
		safe = "file"
	}
	return uuid.NewString() + "_" + safe
}
