// Package clock abstracts the wall clock so temporal booking classification
// can be tested against a fixed instant instead of sleeping real seconds.
package clock

import (
	"sync"
	"time"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by the wall clock, in UTC.
type System struct{}

// NewSystem creates a wall-clock Clock.
func NewSystem() *System {
	return &System{}
}

// Now returns the current UTC time.
func (*System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a Clock pinned to an instant, adjustable from tests.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed creates a Clock pinned to the given instant.
func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now.UTC()}
}

// Now returns the pinned instant.
func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set repins the clock to the given instant.
func (f *Fixed) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now.UTC()
}

// Advance moves the pinned instant forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
