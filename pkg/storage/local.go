package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"paperdesk/pkg/apperror"
)

type localStorage struct {
	dir string
}

// NewLocalStorage creates a disk-backed FileStorage rooted at dir,
// creating the directory if it does not exist yet.
func NewLocalStorage(dir string) (FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &localStorage{dir: dir}, nil
}

func (s *localStorage) path(name string) string {
	// name is a StoredName, never a client-supplied path
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *localStorage) Save(ctx context.Context, name string, r io.Reader) error {
	f, err := os.Create(s.path(name))
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	return f.Close()
}

func (s *localStorage) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, apperror.ErrNotFound
		}
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

func (s *localStorage) Delete(ctx context.Context, name string) error {
	err := os.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
