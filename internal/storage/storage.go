// Package storage is the static file origin for uploaded deliverables and
// payment proofs. Files are addressed by a flat stored name and served back
// under /uploads/<name>.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// URLPrefix is the public path under which stored files are served.
const URLPrefix = "/uploads/"

// FileStore persists and retrieves uploaded bytes by stored name.
// Open returns errors.ErrNotFound for unknown names.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// StoredName derives a collision-resistant flat name from the client's
// original filename: a timestamp prefix, with ".." removed and path
// separators replaced so the result cannot escape the upload root.
func StoredName(original string, at time.Time) string {
	if original == "" {
		original = "file"
	}
	name := fmt.Sprintf("%d.%06d_%s", at.Unix(), at.Nanosecond()/1000, original)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	return name
}

// URL returns the public reference for a stored name.
func URL(name string) string {
	return URLPrefix + name
}

// validName reports whether name is a flat stored name.
func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "/\\") && !strings.Contains(name, "..")
}
