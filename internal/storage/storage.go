// Package storage provides the local key-value persistence layer. Values
// are stored as JSON blobs under string keys, one file per key, mirroring
// the flat key/value layout the data originally lived in.
package storage

import (
	"errors"
	"fmt"
)

// Storage keys for the persisted collections and auxiliary state.
const (
	KeyCustomers = "bizgrow-customers"
	KeyRevenues  = "bizgrow-revenues"
	KeyExpenses  = "bizgrow-expenses"
	KeySettings  = "bizgrow-settings"
	KeyBackup    = "bizgrow-backup"
	KeyWelcome   = "bizgrow-welcome"
)

// ErrNotFound is returned by Load when no value exists under the key.
var ErrNotFound = errors.New("key not found")

// ReadError indicates a value exists but could not be read or decoded.
// Callers are expected to recover with a default value.
type ReadError struct {
	Key string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Key, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError indicates a value could not be durably persisted. Callers keep
// their in-memory state and surface the failure as a warning.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// KV is the persistence contract consumed by the record store.
type KV interface {
	// Load decodes the value under key into dest. Returns ErrNotFound when
	// the key is absent and *ReadError when the value cannot be decoded.
	Load(key string, dest any) error
	// Save encodes v under key. Returns *WriteError on failure.
	Save(key string, v any) error
	// Delete removes the value under key. Absent keys are not an error.
	Delete(key string) error
}
