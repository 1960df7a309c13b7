package engine

import (
	"testing"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/model"
)

func TestWatchClock_TickOnlyWhilePlaying(t *testing.T) {
	w := NewWatchClock(model.Video{VideoID: "v1", DurationSeconds: 200})

	if w.Tick() {
		t.Error("unstarted clock should not accumulate")
	}

	w.SetState(model.PlayerPlaying)
	for i := 0; i < 10; i++ {
		if !w.Tick() {
			t.Fatal("playing clock should accumulate")
		}
	}
	if w.Accumulated() != 10 {
		t.Errorf("accumulated = %d, want 10", w.Accumulated())
	}

	w.SetState(model.PlayerPaused)
	if w.Tick() {
		t.Error("paused clock should not accumulate")
	}
	w.SetState(model.PlayerBuffering)
	if w.Tick() {
		t.Error("buffering clock should not accumulate")
	}
	if w.Accumulated() != 10 {
		t.Errorf("accumulated after pause = %d, want 10", w.Accumulated())
	}
}

func TestWatchClock_StopIdempotent(t *testing.T) {
	w := NewWatchClock(model.Video{VideoID: "v1", DurationSeconds: 200})
	w.SetState(model.PlayerPlaying)
	w.Tick()

	// Stopping an already-stopped clock is a no-op, never a decrement.
	w.SetState(model.PlayerPaused)
	w.SetState(model.PlayerPaused)
	w.SetState(model.PlayerPaused)
	if w.Accumulated() != 1 {
		t.Errorf("accumulated = %d, want 1", w.Accumulated())
	}
}

func TestWatchClock_EndedIsTerminal(t *testing.T) {
	w := NewWatchClock(model.Video{VideoID: "v1", DurationSeconds: 60})
	w.SetState(model.PlayerPlaying)
	for i := 0; i < 60; i++ {
		w.Tick()
	}
	w.SetState(model.PlayerEnded)

	if !w.Ended() {
		t.Fatal("clock should be ended")
	}

	// Re-entering playing after ended is only possible with a new
	// session; the flag never unsets.
	w.SetState(model.PlayerPlaying)
	if !w.Ended() {
		t.Error("ended flag should survive a late playing event")
	}
	if w.Tick() {
		t.Error("ended clock should not accumulate")
	}

	// Accumulated seconds are preserved for eligibility purposes.
	if w.Accumulated() != 60 {
		t.Errorf("accumulated = %d, want 60", w.Accumulated())
	}
}

func TestWatchClock_EvaluateUsesOwnCounters(t *testing.T) {
	w := NewWatchClock(model.Video{VideoID: "v1", DurationSeconds: 90})
	w.SetState(model.PlayerPlaying)
	w.Tick()

	if w.Evaluate().Eligible {
		t.Error("short video mid-play should not be eligible")
	}
	w.SetState(model.PlayerEnded)
	if !w.Evaluate().Eligible {
		t.Error("short video after ended should be eligible")
	}
}
