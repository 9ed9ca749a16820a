package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs returns an id generator that produces "prefix-0001",
// "prefix-0002", and so on.
//
// History entries normally get UUIDv7 ids; swapping in a sequential
// generator makes scenario traces reproducible and golden snapshots
// byte-identical across runs.
//
// Thread-safety: the returned function is safe for concurrent use.
func SequentialIDs(prefix string) func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%04d", prefix, n)
	}
}
