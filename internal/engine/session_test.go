package engine

import (
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/model"
)

// roomPlaylist is the 3-video list used across the scenario tests:
// a short video, a long one, and a short one.
func roomPlaylist() []model.Video {
	return []model.Video{
		{VideoID: "vid-a", DurationSeconds: 60, Position: 0},
		{VideoID: "vid-b", DurationSeconds: 200, Position: 1},
		{VideoID: "vid-c", DurationSeconds: 90, Position: 2},
	}
}

// newTestSession builds a session over a fake clock so no real ticker
// fires; tests drive tick() directly for deterministic time.
func newTestSession(videos []model.Video, hooks Hooks) *Session {
	return newSession("sess-test", "room-1", "user-1", videos, clockwork.NewFakeClock(), zerolog.Nop(), hooks)
}

func tickN(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.tick()
	}
}

func TestSession_ShortVideoEndAutoAdvances(t *testing.T) {
	var advancedTo []int
	s := newTestSession(roomPlaylist(), Hooks{
		OnCursorChange: func(_, _ string, index int) { advancedTo = append(advancedTo, index) },
	})

	s.HandleState(model.PlayerPlaying)
	tickN(s, 60)
	s.HandleState(model.PlayerEnded)

	snap := s.Snapshot()
	if !snap.Eligible {
		t.Fatal("short video at ended should be eligible")
	}
	if snap.Countdown == nil || snap.Countdown.Kind != string(CountdownEndOfVideo) {
		t.Fatalf("countdown = %+v, want armed end_of_video", snap.Countdown)
	}

	// No explicit certify: the end countdown expires and advances.
	tickN(s, 2)
	if got := s.Snapshot().Index; got != 0 {
		t.Fatalf("index advanced after %d ticks, want advance on the 3rd", 2)
	}
	tickN(s, 1)

	snap = s.Snapshot()
	if snap.Index != 1 {
		t.Errorf("index = %d, want 1", snap.Index)
	}
	if snap.VideoID != "vid-b" {
		t.Errorf("videoId = %s, want vid-b", snap.VideoID)
	}
	// Fresh session for the new video.
	if snap.AccumulatedSeconds != 0 {
		t.Errorf("accumulated = %d, want 0 after advance", snap.AccumulatedSeconds)
	}
	if snap.PlayerState != model.PlayerUnstarted {
		t.Errorf("playerState = %s, want unstarted", snap.PlayerState)
	}
	if len(advancedTo) != 1 || advancedTo[0] != 1 {
		t.Errorf("cursor change notifications = %v, want [1]", advancedTo)
	}
}

func TestSession_LongVideoEligibilityCountdownAndCertify(t *testing.T) {
	s := newTestSession(roomPlaylist(), Hooks{})
	if !s.SelectManual(1) {
		t.Fatal("select index 1 should succeed")
	}

	s.HandleState(model.PlayerPlaying)
	tickN(s, 179)
	if s.Snapshot().Eligible {
		t.Fatal("179 accumulated seconds should not be eligible")
	}

	tickN(s, 1)
	snap := s.Snapshot()
	if !snap.Eligible {
		t.Fatal("180 accumulated seconds should be eligible")
	}
	if snap.Countdown == nil || snap.Countdown.Kind != string(CountdownEligibility) {
		t.Fatalf("countdown = %+v, want armed eligibility", snap.Countdown)
	}

	// Eligibility survives a pause for the rest of the session.
	s.HandleState(model.PlayerPaused)
	if !s.Snapshot().Eligible {
		t.Error("eligibility should remain true after pausing")
	}

	// Explicit certify pre-empts the passive countdown.
	s.MarkCertified()
	snap = s.Snapshot()
	if !snap.Certified {
		t.Error("session should be marked certified")
	}
	if snap.Countdown != nil {
		t.Errorf("countdown = %+v, want cancelled", snap.Countdown)
	}

	// Letting the original expiry window elapse mutates nothing.
	tickN(s, 20)
	if got := s.Snapshot().Index; got != 1 {
		t.Errorf("index = %d, want 1 (no auto-advance after certify)", got)
	}
}

func TestSession_EligibilityCountdownExpiryAdvances(t *testing.T) {
	s := newTestSession(roomPlaylist(), Hooks{})
	s.SelectManual(1)
	s.HandleState(model.PlayerPlaying)

	tickN(s, 180) // crosses threshold, countdown armed
	tickN(s, 5)   // full countdown elapses

	snap := s.Snapshot()
	if snap.Index != 2 {
		t.Errorf("index = %d, want 2 after eligibility countdown expiry", snap.Index)
	}
	if snap.VideoID != "vid-c" {
		t.Errorf("videoId = %s, want vid-c", snap.VideoID)
	}
}

func TestSession_NoCrossVideoLeakage(t *testing.T) {
	s := newTestSession(roomPlaylist(), Hooks{})
	s.HandleState(model.PlayerPlaying)
	tickN(s, 30)

	if got := s.Snapshot().AccumulatedSeconds; got != 30 {
		t.Fatalf("accumulated = %d, want 30", got)
	}

	s.SelectManual(1)
	s.SelectManual(0)

	snap := s.Snapshot()
	if snap.AccumulatedSeconds != 0 {
		t.Errorf("accumulated = %d, want 0 (fresh session on return)", snap.AccumulatedSeconds)
	}
	if snap.PlayerState != model.PlayerUnstarted {
		t.Errorf("playerState = %s, want unstarted", snap.PlayerState)
	}
}

func TestSession_ManualSwitchCancelsCountdown(t *testing.T) {
	s := newTestSession(roomPlaylist(), Hooks{})
	s.HandleState(model.PlayerPlaying)
	tickN(s, 60)
	s.HandleState(model.PlayerEnded)

	if s.Snapshot().Countdown == nil {
		t.Fatal("end countdown should be armed")
	}

	s.SelectManual(2)
	if s.Snapshot().Countdown != nil {
		t.Fatal("switching videos should cancel the countdown")
	}

	// The old countdown's expiry window elapses without a cursor mutation.
	tickN(s, 10)
	if got := s.Snapshot().Index; got != 2 {
		t.Errorf("index = %d, want 2 (stale countdown must not advance)", got)
	}
}

func TestSession_DeepLinkResolvesOrFailsSilently(t *testing.T) {
	s := newTestSession(roomPlaylist(), Hooks{})
	s.HandleState(model.PlayerPlaying)
	tickN(s, 5)

	if s.SelectExternal("nonexistent-id") {
		t.Error("unknown deep link should report no match")
	}
	snap := s.Snapshot()
	if snap.Index != 0 || snap.AccumulatedSeconds != 5 {
		t.Errorf("snapshot = index %d / %ds, want untouched 0 / 5s", snap.Index, snap.AccumulatedSeconds)
	}

	if !s.SelectExternal("vid-c") {
		t.Fatal("known deep link should resolve")
	}
	snap = s.Snapshot()
	if snap.Index != 2 || snap.AccumulatedSeconds != 0 {
		t.Errorf("snapshot = index %d / %ds, want 2 / 0s", snap.Index, snap.AccumulatedSeconds)
	}
}

func TestSession_NoEndCountdownOnLastVideo(t *testing.T) {
	s := newTestSession(roomPlaylist(), Hooks{})
	s.SelectManual(2)
	s.HandleState(model.PlayerPlaying)
	tickN(s, 90)
	s.HandleState(model.PlayerEnded)

	// Nothing to advance to, so the end countdown stays down; the
	// eligibility countdown still arms (its expiry advance clamps).
	snap := s.Snapshot()
	if snap.Countdown == nil || snap.Countdown.Kind != string(CountdownEligibility) {
		t.Fatalf("countdown = %+v, want eligibility on last video", snap.Countdown)
	}

	tickN(s, 5)
	if got := s.Snapshot().Index; got != 2 {
		t.Errorf("index = %d, want 2 (clamped)", got)
	}

	// An expired eligibility countdown does not re-arm for the same video.
	tickN(s, 10)
	if s.Snapshot().Countdown != nil {
		t.Error("eligibility countdown must not re-arm after expiring")
	}
}

func TestSession_PriorCertificationSuppressesCountdown(t *testing.T) {
	s := newTestSession(roomPlaylist(), Hooks{})
	s.SelectManual(1)
	s.SetCertified(true)

	s.HandleState(model.PlayerPlaying)
	tickN(s, 200)

	snap := s.Snapshot()
	if snap.Countdown != nil {
		t.Errorf("countdown = %+v, want none for an already-certified video", snap.Countdown)
	}
	if snap.Index != 1 {
		t.Errorf("index = %d, want 1", snap.Index)
	}
}

func TestSession_ClosedSessionIgnoresEvents(t *testing.T) {
	s := newTestSession(roomPlaylist(), Hooks{})
	s.HandleState(model.PlayerPlaying)
	tickN(s, 10)
	s.Close()
	s.Close() // idempotent

	tickN(s, 50)
	s.HandleState(model.PlayerEnded)
	if s.SelectManual(1) {
		t.Error("closed session should refuse selection")
	}

	snap := s.Snapshot()
	if snap.AccumulatedSeconds != 10 || snap.Index != 0 {
		t.Errorf("closed session mutated: %+v", snap)
	}
}

func TestSession_EndCountdownPreferredOverEligibility(t *testing.T) {
	// A long video with 180+ accumulated has the eligibility countdown
	// running when natural end arrives; the shorter end countdown
	// replaces it.
	s := newTestSession(roomPlaylist(), Hooks{})
	s.SelectManual(1)
	s.HandleState(model.PlayerPlaying)
	tickN(s, 182) // armed at 180, remaining 3

	snap := s.Snapshot()
	if snap.Countdown == nil || snap.Countdown.Kind != string(CountdownEligibility) {
		t.Fatalf("countdown = %+v, want running eligibility", snap.Countdown)
	}

	s.HandleState(model.PlayerEnded)
	snap = s.Snapshot()
	if snap.Countdown == nil || snap.Countdown.Kind != string(CountdownEndOfVideo) {
		t.Fatalf("countdown = %+v, want end_of_video after natural end", snap.Countdown)
	}
	if snap.Countdown.RemainingSeconds != 3 {
		t.Errorf("remaining = %d, want a fresh 3", snap.Countdown.RemainingSeconds)
	}
}
