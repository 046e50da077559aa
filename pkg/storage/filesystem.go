package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrBadDocumentKey = errors.New("storage: invalid document key")

// FilesystemDriver keeps each document as one JSON file under baseDir. Keys may
// contain '/' to group documents in subdirectories.
type FilesystemDriver struct {
	baseDir string
}

func (fs *FilesystemDriver) Init(directory string) error {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return err
	}
	fs.baseDir = directory
	return nil
}

func (fs *FilesystemDriver) path(key string) (string, error) {
	if key == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("%w: %q", ErrBadDocumentKey, key)
	}
	return filepath.Join(fs.baseDir, filepath.FromSlash(key)+".json"), nil
}

// ReadDocument leaves v untouched when the document does not exist.
func (fs *FilesystemDriver) ReadDocument(_ context.Context, key string, v interface{}) error {
	p, err := fs.path(key)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// WriteDocument replaces the whole document through a rename, so readers never
// see a partial file.
func (fs *FilesystemDriver) WriteDocument(_ context.Context, key string, v interface{}) error {
	p, err := fs.path(key)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), ".doc-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}

func (fs *FilesystemDriver) Close() error {
	return nil
}
