// Package imagestore decodes base64 data-URI image payloads into named
// binary blobs on disk and hands back their public URL path.
package imagestore

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	dataURIPrefix = "data:image/"
	base64Marker  = ";base64,"

	// URLPrefix is where stored images are served from.
	URLPrefix = "/media/"
)

// Store writes decoded images under a media directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// IsDataURI reports whether the payload is a base64 image data URI rather
// than an already-stored path.
func IsDataURI(image string) bool {
	return strings.HasPrefix(image, dataURIPrefix)
}

// Save decodes a "data:image/<ext>;base64,<payload>" string, writes the blob
// as <uuid>.<ext> under the media directory and returns its URL path. An
// input that is not a data URI is assumed to be an already-stored reference
// and is returned unchanged.
func (s *Store) Save(image string) (string, error) {
	if !IsDataURI(image) {
		return image, nil
	}

	header, payload, found := strings.Cut(image, base64Marker)
	if !found {
		return "", fmt.Errorf("malformed image data URI: missing base64 marker")
	}
	ext := strings.TrimPrefix(header, dataURIPrefix)
	if ext == "" || strings.ContainsAny(ext, "/\\.") {
		return "", fmt.Errorf("malformed image data URI: bad MIME subtype %q", ext)
	}

	blob, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("failed to decode image payload: %w", err)
	}

	name := uuid.New().String() + "." + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), blob, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image %s: %w", name, err)
	}
	return URLPrefix + name, nil
}
