package utils

import (
	"testing"
	"time"
)

func TestStringSetNoDuplicates(t *testing.T) {
	s := NewStringSet()

	if !s.Add("/cinema/movie/10345/") {
		t.Error("first Add should return true")
	}
	if s.Add("/cinema/movie/10345/") {
		t.Error("second Add of same value should return false")
	}
	if s.Add(" /cinema/movie/10345/ ") {
		t.Error("Add should trim before comparing")
	}
	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
}

func TestRateLimiterEnforcesInterval(t *testing.T) {
	intervalMs := 50
	r := NewRateLimiter(intervalMs)

	var timestamps []time.Time
	for i := 0; i < 3; i++ {
		r.Wait()
		timestamps = append(timestamps, time.Now())
	}

	min := time.Duration(intervalMs) * time.Millisecond
	for i := 1; i < len(timestamps); i++ {
		gap := timestamps[i].Sub(timestamps[i-1])
		if gap < min {
			t.Errorf("gap between call %d and %d: %v < minimum %v", i-1, i, gap, min)
		}
	}
}

func TestRateLimiterZeroIntervalDoesNotBlock(t *testing.T) {
	r := NewRateLimiter(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		r.Wait()
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("zero-interval limiter blocked for %v", elapsed)
	}
}
