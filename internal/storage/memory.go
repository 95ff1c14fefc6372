package storage

import (
	"encoding/json"
)

// Memory is a map-backed KV store used in tests and anywhere a throwaway
// store is needed.
type Memory struct {
	values map[string][]byte

	// FailWrites makes every Save return a *WriteError, for exercising
	// the best-effort durability path.
	FailWrites bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Load decodes the value stored under key into dest.
func (m *Memory) Load(key string, dest any) error {
	raw, ok := m.values[key]
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return &ReadError{Key: key, Err: err}
	}
	return nil
}

// Save encodes v under key.
func (m *Memory) Save(key string, v any) error {
	if m.FailWrites {
		return &WriteError{Key: key, Err: errWriteDisabled}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return &WriteError{Key: key, Err: err}
	}
	m.values[key] = raw
	return nil
}

// Delete removes the value stored under key.
func (m *Memory) Delete(key string) error {
	delete(m.values, key)
	return nil
}

// SetRaw stores a raw blob under key, for corrupt-value tests.
func (m *Memory) SetRaw(key string, raw []byte) {
	m.values[key] = raw
}

// Has reports whether a value exists under key.
func (m *Memory) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

var errWriteDisabled = &writeDisabledError{}

type writeDisabledError struct{}

func (*writeDisabledError) Error() string { return "writes disabled" }
