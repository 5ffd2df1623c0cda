// Package rng provides the uniform random source shared by every
// evolutionary operator. A Source is an explicit handle so tests can run
// deterministically; Global is the process-wide convenience instance.
package rng

import (
	"math/rand"
	"sync"
	"time"
)

// Source draws uniform samples over integer and real ranges. All methods
// are safe for concurrent use; interleaving order across goroutines is
// not defined, only that every draw is well formed.
type Source struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// New returns a source seeded deterministically.
func New(seed int64) *Source {
	return &Source{rand: rand.New(rand.NewSource(seed))}
}

var (
	globalOnce sync.Once
	global     *Source
)

// Global returns the lazily-initialized process-wide source, seeded from
// the wall clock on first use. Engines that are not given an explicit
// source fall back to it.
func Global() *Source {
	globalOnce.Do(func() {
		global = New(time.Now().UnixNano())
	})
	return global
}

// Float64 returns a uniform real in [min, max].
func (s *Source) Float64(min, max float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rand.Float64()*(max-min)
}

// Int returns a uniform integer in [min, max], both ends inclusive.
// min > max panics, matching the misuse contract of math/rand.
func (s *Source) Int(min, max int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rand.Intn(max-min+1)
}
