package testutil

import (
	"sync"
	"time"
)

// clockBase is the first timestamp a DeterministicClock hands out.
var clockBase = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// DeterministicClock provides a thread-safe stepping clock for tests.
//
// Each call to Now() returns a timestamp one minute after the previous one,
// starting from a fixed base. The same test scenario therefore produces
// byte-identical timestamps on every run, which makes history entries safe
// to compare against golden files.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu   sync.Mutex
	tick int
}

// NewDeterministicClock creates a clock whose first Now() call returns
// 2024-01-01T00:00:00Z.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{}
}

// Now returns the next timestamp, one minute after the previous one.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := clockBase.Add(time.Duration(c.tick) * time.Minute)
	c.tick++
	return now
}

// Current returns the timestamp the next Now() call will produce, without
// advancing the clock.
func (c *DeterministicClock) Current() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clockBase.Add(time.Duration(c.tick) * time.Minute)
}

// Reset rewinds the clock to the base timestamp.
//
// Used for test reuse. After Reset(), the next call to Now() returns the
// base timestamp again.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick = 0
}
