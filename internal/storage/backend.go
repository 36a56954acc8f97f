// Package storage provides the persistence layer for Boost.
//
// A Backend maps collection keys to raw bytes. Store layers typed,
// versioned collections on top of any Backend.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/spf13/afero"
)

const (
	// AppName is the application name used for data directories.
	AppName = "boost"
)

var (
	// ErrKeyNotFound is returned when a key is not found in the backend.
	ErrKeyNotFound = errors.New("key not found")
)

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, badger.ErrKeyNotFound)
}

// Backend is a durable key-value mapping of collection keys to bytes.
type Backend interface {
	// Name identifies the backend kind.
	Name() string
	// Get returns the stored bytes or ErrKeyNotFound.
	Get(key string) ([]byte, error)
	// Set overwrites the value at key.
	Set(key string, data []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Keys lists every stored key.
	Keys() ([]string, error)
	// Close releases the backend.
	Close() error
}

// Kind selects a backend implementation.
type Kind string

const (
	KindBadger Kind = "badger"
	KindSQLite Kind = "sqlite"
	KindFile   Kind = "file"
)

// ParseKind validates a backend name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindBadger, KindSQLite, KindFile:
		return Kind(s), nil
	case "":
		return KindBadger, nil
	default:
		return "", fmt.Errorf("unsupported storage backend: %s (supported: badger, sqlite, file)", s)
	}
}

// Options configures a backend.
type Options struct {
	// Kind selects the backend. Empty means badger.
	Kind Kind
	// Path is the data location. Empty string uses in-memory mode.
	Path string
	// InMemory forces in-memory mode regardless of Path.
	InMemory bool
	// Fs is the filesystem for the file backend. Nil uses the OS filesystem,
	// or a memory filesystem in in-memory mode.
	Fs afero.Fs
}

// DefaultPath returns the default data path for kind following XDG spec.
func DefaultPath(kind Kind) string {
	switch kind {
	case KindSQLite:
		return filepath.Join(xdg.DataHome, AppName, "boost.db")
	case KindFile:
		return filepath.Join(xdg.DataHome, AppName, "collections")
	default:
		return filepath.Join(xdg.DataHome, AppName, "db")
	}
}

// OpenBackend opens the backend described by opts.
func OpenBackend(opts Options) (Backend, error) {
	kind, err := ParseKind(string(opts.Kind))
	if err != nil {
		return nil, err
	}

	inMemory := opts.InMemory || opts.Path == ""
	switch kind {
	case KindSQLite:
		if inMemory {
			return OpenSQLite(":memory:")
		}
		return OpenSQLite(opts.Path)
	case KindFile:
		fs := opts.Fs
		if fs == nil {
			if inMemory {
				fs = afero.NewMemMapFs()
			} else {
				fs = afero.NewOsFs()
			}
		}
		dir := opts.Path
		if dir == "" {
			dir = "/collections"
		}
		return OpenFile(fs, dir)
	default:
		return Open(opts)
	}
}
