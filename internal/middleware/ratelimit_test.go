package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    5,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	for i := 0; i < 5; i++ {
		if !rl.Allow("user:abc") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_BlocksAfterMax(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    3,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	for i := 0; i < 3; i++ {
		rl.Allow("user:abc")
	}

	if rl.Allow("user:abc") {
		t.Fatal("4th request should be blocked")
	}
}

func TestRateLimiter_DifferentKeysIndependent(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    2,
		Window: time.Minute,
		KeyFn:  KeyByUserID,
	})

	rl.Allow("user:a")
	rl.Allow("user:a")

	if rl.Allow("user:a") {
		t.Fatal("user:a should be blocked")
	}
	if !rl.Allow("user:b") {
		t.Fatal("user:b should be allowed (independent key)")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    2,
		Window: 50 * time.Millisecond,
		KeyFn:  KeyByIP,
	})

	rl.Allow("k")
	rl.Allow("k")

	if rl.Allow("k") {
		t.Fatal("should be blocked within window")
	}

	time.Sleep(60 * time.Millisecond)

	if !rl.Allow("k") {
		t.Fatal("should be allowed after window reset")
	}
}

func TestCertifyRateLimiter_Config(t *testing.T) {
	rl := NewCertifyRateLimiter()

	for i := 0; i < 10; i++ {
		if !rl.Allow("user:u1") {
			t.Fatalf("certify %d should be allowed", i+1)
		}
	}
	if rl.Allow("user:u1") {
		t.Fatal("11th certify in a minute should be blocked")
	}
}
