package storage

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/manav03panchal/boost/internal/errors"
	"github.com/manav03panchal/boost/internal/logging"
	"github.com/manav03panchal/boost/internal/model"
)

// CollectionHealth describes one collection as found in the backend.
type CollectionHealth struct {
	Collection model.Collection `json:"collection" yaml:"collection"`
	Present    bool             `json:"present" yaml:"present"`
	Readable   bool             `json:"readable" yaml:"readable"`
	Version    int              `json:"version" yaml:"version"`
	Items      int              `json:"items" yaml:"items"`
	TooNew     bool             `json:"too_new,omitempty" yaml:"too_new,omitempty"`
	Error      string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// RecoveryStatus represents the result of a storage health check.
type RecoveryStatus struct {
	Healthy     bool               `json:"healthy" yaml:"healthy"`
	Backend     string             `json:"backend" yaml:"backend"`
	LastCheck   time.Time          `json:"last_check" yaml:"last_check"`
	ErrorCount  int                `json:"error_count" yaml:"error_count"`
	Collections []CollectionHealth `json:"collections" yaml:"collections"`
	Unknown     []string           `json:"unknown_keys,omitempty" yaml:"unknown_keys,omitempty"`
}

// Check decodes every known collection and reports what would be discarded
// on load.
func Check(b Backend) *RecoveryStatus {
	status := &RecoveryStatus{
		Healthy:   true,
		Backend:   b.Name(),
		LastCheck: time.Now(),
	}

	known := make(map[string]bool, len(model.Collections))
	for _, c := range model.Collections {
		known[string(c)] = true
		h := CollectionHealth{Collection: c}

		raw, err := b.Get(string(c))
		switch {
		case IsErrKeyNotFound(err):
			h.Readable = true
		case err != nil:
			h.Present = true
			h.Error = err.Error()
		default:
			h.Present = true
			h.Version, h.Items, err = decodeCollection(c, raw, nil)
			if err != nil {
				h.Error = err.Error()
				h.TooNew = IsSchemaTooNew(err)
			} else {
				h.Readable = true
			}
		}

		if !h.Readable {
			status.Healthy = false
			status.ErrorCount++
		}
		status.Collections = append(status.Collections, h)
	}

	keys, err := b.Keys()
	if err != nil {
		status.Healthy = false
		status.ErrorCount++
		logging.Warn("failed to list storage keys", logging.KeyBackend, b.Name(), logging.KeyError, err)
	}
	for _, k := range keys {
		if !known[k] {
			status.Unknown = append(status.Unknown, k)
		}
	}

	return status
}

// CreateBackup writes the raw bytes of every stored collection into a
// timestamped directory under dir. Returns the backup path.
func CreateBackup(b Backend, fs afero.Fs, dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("backup directory is empty")
	}

	timestamp := time.Now().Format("20060102-150405")
	backupPath := filepath.Join(dir, fmt.Sprintf("%s-backup-%s", AppName, timestamp))
	if err := fs.MkdirAll(backupPath, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	keys, err := b.Keys()
	if err != nil {
		return "", fmt.Errorf("failed to list keys: %w", err)
	}
	for _, k := range keys {
		raw, err := b.Get(k)
		if err != nil {
			logging.Warn("skipping unreadable entry", logging.KeyCollection, k, logging.KeyError, err)
			continue
		}
		if err := afero.WriteFile(fs, filepath.Join(backupPath, k+fileExt), raw, 0600); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", k, err)
		}
	}

	logging.Info("storage backup created", logging.KeyOperation, "backup", "path", backupPath)
	return backupPath, nil
}

// AttemptRecovery backs up the store, then deletes every collection that
// cannot be decoded so the next load starts clean. Collections written by a
// newer release are kept.
// Returns the collections removed.
func AttemptRecovery(b Backend, fs afero.Fs, backupDir string) ([]model.Collection, error) {
	backupPath, err := CreateBackup(b, fs, backupDir)
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("recover", "failed to back up storage", err)
	}

	var removed []model.Collection
	for _, h := range Check(b).Collections {
		if h.Readable || h.TooNew {
			continue
		}
		if err := b.Delete(string(h.Collection)); err != nil {
			return removed, errors.NewSystemErrorWithOp("recover", "failed to remove collection", err)
		}
		removed = append(removed, h.Collection)
	}

	logging.Info("storage recovery attempted",
		"backup_path", backupPath,
		logging.KeyCount, len(removed),
		logging.KeyStatus, "completed")
	return removed, nil
}

// IsSchemaTooNew reports whether err came from a collection written by a
// newer release.
func IsSchemaTooNew(err error) bool {
	return stderrors.Is(err, ErrSchemaTooNew)
}
