package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local writes files below a directory served by the HTTP router under
// publicBase.
type Local struct {
	dir        string
	publicBase string
}

func NewLocal(dir, publicBase string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Local{
		dir:        dir,
		publicBase: strings.TrimSuffix(publicBase, "/"),
	}, nil
}

func (s *Local) Dir() string { return s.dir }

func (s *Local) Save(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	dst := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}

	return s.publicBase + "/" + key, nil
}

func (s *Local) Delete(_ context.Context, ref string) error {
	key, err := keyFromRef(s.publicBase, ref)
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
