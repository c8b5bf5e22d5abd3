package filestorage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathEscapesRoot is returned for any relative path that resolves
// outside the sandbox root, regardless of whether the target exists.
var ErrPathEscapesRoot = errors.New("path escapes the asset root")

func NewLocalStorage(root string) (*LocalStorage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve asset root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create asset root: %w", err)
	}
	return &LocalStorage{root: abs}, nil
}

// LocalStorage reads and writes files under a single directory tree. Every
// method takes sandbox-relative, slash-separated paths and refuses anything
// that resolves outside the root.
type LocalStorage struct {
	root string
}

func (f *LocalStorage) Root() string { return f.root }

// Resolve maps a sandbox-relative path to an absolute one, rejecting
// traversal out of the root.
func (f *LocalStorage) Resolve(rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", ErrPathEscapesRoot
	}
	abs := filepath.Clean(filepath.Join(f.root, filepath.FromSlash(rel)))
	if abs != f.root && !strings.HasPrefix(abs, f.root+string(filepath.Separator)) {
		return "", ErrPathEscapesRoot
	}
	return abs, nil
}

func (f *LocalStorage) WriteFile(_ context.Context, rel string, data []byte) error {
	abs, err := f.Resolve(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("create folder for %s: %w", rel, err)
	}
	return os.WriteFile(abs, data, 0o644)
}

func (f *LocalStorage) ReadFile(_ context.Context, rel string) ([]byte, error) {
	abs, err := f.Resolve(rel)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

func (f *LocalStorage) Remove(_ context.Context, rel string) error {
	abs, err := f.Resolve(rel)
	if err != nil {
		return err
	}
	return os.Remove(abs)
}

func (f *LocalStorage) Stat(rel string) (os.FileInfo, error) {
	abs, err := f.Resolve(rel)
	if err != nil {
		return nil, err
	}
	return os.Stat(abs)
}

func (f *LocalStorage) EnsureDir(rel string) error {
	abs, err := f.Resolve(rel)
	if err != nil {
		return err
	}
	return os.MkdirAll(abs, 0o755)
}
