package store

import (
	"context"
	"errors"
	"sync"
)

// errUnavailable stands in for a failing backend.
var errUnavailable = errors.New("backing store unavailable")

// Memory is an in-memory Adapter. It backs tests and serves as the fallback
// when the SQLite store cannot be opened; contents vanish with the process.
//
// FailReads and FailWrites inject backend failures so the degradation paths
// can be exercised.
type Memory struct {
	FailReads  bool
	FailWrites bool

	mu     sync.Mutex
	data   map[string]string
	writes int
}

// NewMemory creates an empty in-memory adapter.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads {
		return "", false, &StorageError{Op: "get", Key: key, Err: errUnavailable}
	}
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.FailWrites {
		return &StorageError{Op: "set", Key: key, Err: errUnavailable}
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return &StorageError{Op: "remove", Key: key, Err: errUnavailable}
	}
	delete(m.data, key)
	return nil
}

// Writes returns how many Set calls the adapter has received, including
// failed ones.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
