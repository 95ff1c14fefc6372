package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gitlab.com/bizgrow/bizgrow/internal/logger"
)

// collectionKeys are the primary keys that trigger an auto-backup snapshot
// after a successful save.
var collectionKeys = map[string]bool{
	KeyCustomers: true,
	KeyRevenues:  true,
	KeyExpenses:  true,
}

// Dir is a file-backed KV store: one <key>.json file per key inside a
// data directory.
type Dir struct {
	path       string
	autoBackup bool
}

// DirOption configures a Dir store.
type DirOption func(*Dir)

// WithAutoBackup toggles the best-effort backup snapshot written after
// collection saves.
func WithAutoBackup(enabled bool) DirOption {
	return func(d *Dir) { d.autoBackup = enabled }
}

// OpenDir opens (creating if needed) a directory-backed store.
func OpenDir(path string, opts ...DirOption) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	d := &Dir{path: path, autoBackup: true}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *Dir) file(key string) string {
	return filepath.Join(d.path, key+".json")
}

// Load decodes the value stored under key into dest.
func (d *Dir) Load(key string, dest any) error {
	raw, err := os.ReadFile(d.file(key))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return &ReadError{Key: key, Err: err}
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return &ReadError{Key: key, Err: err}
	}
	return nil
}

// Save encodes v under key via a temp-file rename so a failed write never
// corrupts the previous value. Collection saves additionally trigger a
// backup snapshot when auto-backup is on.
func (d *Dir) Save(key string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &WriteError{Key: key, Err: err}
	}
	if err := d.writeFile(key, raw); err != nil {
		return &WriteError{Key: key, Err: err}
	}
	if d.autoBackup && collectionKeys[key] {
		d.snapshot(key, raw)
	}
	return nil
}

func (d *Dir) writeFile(key string, raw []byte) error {
	target := d.file(key)
	tmp, err := os.CreateTemp(d.path, key+"-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}

// backupBlob is the envelope written under KeyBackup.
type backupBlob struct {
	Key       string          `json:"key"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// snapshot writes a timestamped copy of the last saved collection. Failures
// are logged and never propagated; the primary write already succeeded.
func (d *Dir) snapshot(key string, raw []byte) {
	blob := backupBlob{Key: key, Timestamp: time.Now().UTC(), Data: raw}
	enc, err := json.MarshalIndent(blob, "", "  ")
	if err == nil {
		err = d.writeFile(KeyBackup, enc)
	}
	if err != nil {
		logger.Log.Warn().Err(err).Str("key", key).Msg("Backup snapshot failed")
	}
}

// Delete removes the value stored under key.
func (d *Dir) Delete(key string) error {
	err := os.Remove(d.file(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &WriteError{Key: key, Err: err}
	}
	return nil
}
