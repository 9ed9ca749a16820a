package store

import (
	"context"
	"fmt"
)

// Adapter is the key-value contract the persistence features build on.
// Values are opaque string payloads; keys are namespaced by the caller.
//
// Get reports absence through its second return value rather than an error,
// so callers can tell "never written" apart from a failing backend.
type Adapter interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// StorageError wraps a backend failure with the operation and key involved.
// Consumers inside this package recover from it by degrading to empty reads
// and best-effort writes; it never reaches end users.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
