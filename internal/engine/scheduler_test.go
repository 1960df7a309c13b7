package engine

import "testing"

func TestScheduler_EligibilityCountdownRunsFiveTicks(t *testing.T) {
	s := NewScheduler()
	if !s.ArmEligibility() {
		t.Fatal("arming an idle scheduler should succeed")
	}

	for i := 0; i < 4; i++ {
		if _, expired := s.Tick(); expired {
			t.Fatalf("countdown expired after %d ticks, want 5", i+1)
		}
	}
	kind, expired := s.Tick()
	if !expired {
		t.Fatal("countdown should expire on the 5th tick")
	}
	if kind != CountdownEligibility {
		t.Errorf("expired kind = %s, want %s", kind, CountdownEligibility)
	}
	if s.Active() {
		t.Error("scheduler should be idle after expiry")
	}
}

func TestScheduler_EndCountdownRunsThreeTicks(t *testing.T) {
	s := NewScheduler()
	s.ArmEndOfVideo()

	s.Tick()
	s.Tick()
	kind, expired := s.Tick()
	if !expired || kind != CountdownEndOfVideo {
		t.Errorf("Tick() = (%s, %v), want (%s, true)", kind, expired, CountdownEndOfVideo)
	}
}

func TestScheduler_EndReplacesEligibility(t *testing.T) {
	s := NewScheduler()
	s.ArmEligibility()
	s.Tick() // 4 remaining

	if !s.ArmEndOfVideo() {
		t.Fatal("end countdown should replace a running eligibility countdown")
	}
	if s.Kind() != CountdownEndOfVideo {
		t.Errorf("kind = %s, want %s", s.Kind(), CountdownEndOfVideo)
	}
	if s.Remaining() != 3 {
		t.Errorf("remaining = %d, want a fresh 3", s.Remaining())
	}
}

func TestScheduler_EligibilityNeverReplacesRunning(t *testing.T) {
	s := NewScheduler()
	s.ArmEndOfVideo()

	// The shorter end countdown wins; eligibility never pre-empts it.
	if s.ArmEligibility() {
		t.Fatal("eligibility countdown must not replace a running countdown")
	}
	if s.Kind() != CountdownEndOfVideo {
		t.Errorf("kind = %s, want %s", s.Kind(), CountdownEndOfVideo)
	}

	s2 := NewScheduler()
	s2.ArmEligibility()
	if s2.ArmEligibility() {
		t.Error("re-arming a running eligibility countdown should be refused")
	}
}

func TestScheduler_CancelIdempotent(t *testing.T) {
	s := NewScheduler()
	s.Cancel() // cancelling idle is a no-op, not an error
	if s.Active() {
		t.Fatal("scheduler should stay idle")
	}

	s.ArmEligibility()
	s.Cancel()
	s.Cancel()
	if s.Active() {
		t.Error("scheduler should be idle after cancel")
	}

	// A cancelled countdown's original expiry time produces nothing.
	for i := 0; i < 10; i++ {
		if _, expired := s.Tick(); expired {
			t.Fatal("cancelled countdown must never expire")
		}
	}
}

func TestScheduler_SingleSlot(t *testing.T) {
	s := NewScheduler()
	s.ArmEligibility()
	s.ArmEndOfVideo() // replaces

	// Only the replacement runs; total ticks to expiry is 3, not 5+3.
	ticks := 0
	for {
		ticks++
		if _, expired := s.Tick(); expired {
			break
		}
		if ticks > 10 {
			t.Fatal("countdown never expired")
		}
	}
	if ticks != 3 {
		t.Errorf("ticks to expiry = %d, want 3", ticks)
	}
}
