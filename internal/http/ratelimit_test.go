package http

import (
	"testing"
	"time"
)

func TestRateLimiterAllows60PerMinute(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request 61 should be refused")
	}
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 61; i++ {
		rl.allow("10.0.0.1")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("a different client should not inherit the limit")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	rl.allow("10.0.0.1")
	rl.mu.Lock()
	rl.clients["10.0.0.1"].lastRequest = time.Now().Add(-11 * time.Minute)
	rl.mu.Unlock()

	rl.cleanupStaleEntries()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.clients) != 0 {
		t.Errorf("stale entries remaining: %d", len(rl.clients))
	}
}
