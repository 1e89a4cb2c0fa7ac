// Package storage keeps uploaded files and hands back the public reference
// stored in the database.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrForeignReference is returned by Delete for references this storage did
// not produce.
var ErrForeignReference = errors.New("reference not owned by this storage")

type Storage interface {
	// Save stores r under key and returns the public reference.
	Save(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	// Delete removes the object behind ref. Missing objects are not an error.
	Delete(ctx context.Context, ref string) error
}

// NewKey builds a unique object key such as "products/5f0c...e1.webp".
func NewKey(folder, ext string) string {
	return path.Join(folder, uuid.NewString()+ext)
}

func keyFromRef(base, ref string) (string, error) {
	prefix := strings.TrimSuffix(base, "/") + "/"
	if !strings.HasPrefix(ref, prefix) {
		return "", ErrForeignReference
	}

	key := path.Clean(strings.TrimPrefix(ref, prefix))
	if key == "." || strings.HasPrefix(key, "../") || key == ".." || strings.HasPrefix(key, "/") {
		return "", ErrForeignReference
	}
	return key, nil
}
