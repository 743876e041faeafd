package utils

import (
	"strings"
	"time"
)

// RateLimiter enforces a minimum interval between consecutive calls.
// The pipeline is single-threaded, so there is no locking here; the
// limiter simply sleeps away whatever remains of the interval.
type RateLimiter struct {
	minInterval time.Duration
	lastCall    time.Time
}

// NewRateLimiter creates a RateLimiter with the given minimum interval
// in milliseconds. A non-positive interval disables waiting.
func NewRateLimiter(intervalMs int) *RateLimiter {
	return &RateLimiter{
		minInterval: time.Duration(intervalMs) * time.Millisecond,
	}
}

// Wait blocks until at least the minimum interval has passed since the
// previous call, then records the new call time.
func (r *RateLimiter) Wait() {
	if r.minInterval > 0 && !r.lastCall.IsZero() {
		if elapsed := time.Since(r.lastCall); elapsed < r.minInterval {
			time.Sleep(r.minInterval - elapsed)
		}
	}
	r.lastCall = time.Now()
}

// StringSet tracks strings that have already been seen, used to
// deduplicate scraped movie links within a run.
type StringSet struct {
	seen map[string]struct{}
}

// NewStringSet creates an empty StringSet.
func NewStringSet() *StringSet {
	return &StringSet{seen: make(map[string]struct{})}
}

// Add returns true if the value was newly added, false if already present.
// Values are trimmed before comparison.
func (s *StringSet) Add(v string) bool {
	v = strings.TrimSpace(v)
	if _, exists := s.seen[v]; exists {
		return false
	}
	s.seen[v] = struct{}{}
	return true
}

// Contains returns true if the value has already been added.
func (s *StringSet) Contains(v string) bool {
	_, exists := s.seen[strings.TrimSpace(v)]
	return exists
}

// Size returns the number of unique values tracked.
func (s *StringSet) Size() int {
	return len(s.seen)
}
