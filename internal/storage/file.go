package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const fileExt = ".json"

// FileStore keeps one JSON file per collection in a directory.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// OpenFile opens a file-per-collection store rooted at dir on fsys.
func OpenFile(fsys afero.Fs, dir string) (*FileStore, error) {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create collections directory: %w", err)
	}
	return &FileStore{fs: fsys, dir: dir}, nil
}

// Name implements Backend.
func (f *FileStore) Name() string {
	return string(KindFile)
}

// Dir returns the directory holding the collection files.
func (f *FileStore) Dir() string {
	return f.dir
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+fileExt)
}

// Get implements Backend.
func (f *FileStore) Get(key string) ([]byte, error) {
	data, err := afero.ReadFile(f.fs, f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	return data, err
}

// Set implements Backend. The file is replaced atomically via rename.
func (f *FileStore) Set(key string, data []byte) error {
	tmp := f.path(key) + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := f.fs.Rename(tmp, f.path(key)); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

// Delete implements Backend.
func (f *FileStore) Delete(key string) error {
	err := f.fs.Remove(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Keys implements Backend.
func (f *FileStore) Keys() ([]string, error) {
	entries, err := afero.ReadDir(f.fs, f.dir)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExt))
	}
	sort.Strings(keys)
	return keys, nil
}

// Close implements Backend.
func (f *FileStore) Close() error {
	return nil
}
