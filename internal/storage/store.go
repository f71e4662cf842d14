// Package storage persists uploaded images on local disk under per-bucket
// subdirectories.
package storage

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Buckets scoping stored files.
const (
	BucketAvatars = "avatars"
	BucketPosts   = "posts"
)

// ErrUnsupportedType is returned when an upload's extension is not on the
// allow-list. Callers treat it as a signal to proceed without the image.
var ErrUnsupportedType = errors.New("unsupported image type")

// allowedExtensions is the case-insensitive extension allow-list.
var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Store writes and deletes image files under a configured upload root.
type Store struct {
	root string
}

// New creates the upload root and its bucket subdirectories.
func New(root string) (*Store, error) {
	for _, bucket := range []string{BucketAvatars, BucketPosts} {
		if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return &Store{root: root}, nil
}

// Root returns the upload root directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the absolute path of a stored file.
func (s *Store) Path(bucket, name string) string {
	return filepath.Join(s.root, bucket, filepath.Base(name))
}

// Save validates the extension, derives a collision-resistant stored name and
// writes data under the bucket. Returns ErrUnsupportedType for files outside
// the allow-list.
func (s *Store) Save(bucket, rawName string, data []byte) (string, error) {
	if !Allowed(rawName) {
		return "", ErrUnsupportedType
	}

	name := fmt.Sprintf("%d_%s_%s",
		time.Now().Unix(),
		uuid.NewString()[:8],
		SanitizeFilename(rawName),
	)

	if err := os.WriteFile(s.Path(bucket, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}
	return name, nil
}

// Replace stores a new file and deletes the superseded one. The old file is
// removed only after the new one is written, so any failure leaves the
// caller's existing filename valid. A rejected upload returns
// ErrUnsupportedType.
func (s *Store) Replace(bucket, oldName, rawName string, data []byte) (string, error) {
	name, err := s.Save(bucket, rawName, data)
	if err != nil {
		return "", err
	}
	if oldName != "" {
		s.Remove(bucket, oldName)
	}
	return name, nil
}

// Remove deletes a stored file. Best-effort: a missing file is not an error.
func (s *Store) Remove(bucket, name string) {
	if name == "" {
		return
	}
	if err := os.Remove(s.Path(bucket, name)); err != nil && !os.IsNotExist(err) {
		// Leave orphaned files for an operator to clean up rather than
		// failing the surrounding operation.
		log.Printf("storage: failed to remove %s/%s: %v", bucket, name, err)
	}
}

// Allowed reports whether the filename's extension is on the allow-list.
// The match is case-insensitive.
func Allowed(rawName string) bool {
	ext := strings.ToLower(filepath.Ext(rawName))
	_, ok := allowedExtensions[ext]
	return ok
}

// SanitizeFilename strips directory components and replaces unsafe runes so
// the result is safe to join under the upload root.
func SanitizeFilename(rawName string) string {
	name := strings.ReplaceAll(rawName, "\\", "/")
	name = path.Base(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		name = "upload"
	}
	return name
}
