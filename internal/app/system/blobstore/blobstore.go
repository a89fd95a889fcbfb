// Package blobstore stores uploaded announcement images.
//
// The API treats blob storage as an opaque collaborator: store bytes, get a
// URL back, delete by URL. This local-disk implementation writes under a
// configured directory that the router serves read-only.
package blobstore

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotManaged is returned when a URL was not issued by this store.
var ErrNotManaged = errors.New("url does not belong to this blob store")

// Local stores blobs on the local filesystem.
type Local struct {
	dir       string // filesystem directory, created on first use
	urlPrefix string // URL prefix the dir is served under, e.g. "/files/uploads"
}

// NewLocal creates a local blob store rooted at dir and served at urlPrefix.
func NewLocal(dir, urlPrefix string) *Local {
	return &Local{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

// Store writes data under a fresh uuid name with the given extension and
// returns the public URL.
func (l *Local) Store(data []byte, ext string) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", err
	}
	ext = strings.TrimPrefix(ext, ".")
	name := uuid.NewString()
	if ext != "" {
		name += "." + ext
	}
	if err := os.WriteFile(filepath.Join(l.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return l.urlPrefix + "/" + name, nil
}

// Delete removes the blob behind a URL previously returned by Store.
// Deleting a URL whose file is already gone is not an error.
func (l *Local) Delete(url string) error {
	if url == "" {
		return nil
	}
	if !strings.HasPrefix(url, l.urlPrefix+"/") {
		return ErrNotManaged
	}
	// path.Base strips any directory components, so a crafted URL cannot
	// escape the storage directory.
	name := path.Base(url)
	err := os.Remove(filepath.Join(l.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
