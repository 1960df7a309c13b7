package engine

import (
	"github.com/ericsone1/youcra-v03-new-sub000/internal/model"
)

// WatchClock accumulates watched seconds for one video while the external
// player reports "playing". It is a plain state machine: the owning
// session drives it from its single tick source, so there is never more
// than one accumulator per session and switching videos cannot leak
// seconds across them.
type WatchClock struct {
	videoID         string
	durationSeconds int
	accumulated     int
	state           model.PlayerState
}

// NewWatchClock starts tracking a video: zero accumulated seconds,
// player unstarted. Ticking has no effect until the player reports
// playing.
func NewWatchClock(v model.Video) *WatchClock {
	return &WatchClock{
		videoID:         v.VideoID,
		durationSeconds: v.DurationSeconds,
		state:           model.PlayerUnstarted,
	}
}

// SetState applies a player state notification. Ended is terminal for
// the session: once set it is never unset, and later notifications are
// ignored (replay requires a fresh session). Applying the current state
// again is a no-op.
func (w *WatchClock) SetState(st model.PlayerState) {
	if w.state == model.PlayerEnded {
		return
	}
	w.state = st
}

// Tick adds one watched second if the player is currently playing.
// Returns whether a second was accumulated.
func (w *WatchClock) Tick() bool {
	if w.state != model.PlayerPlaying {
		return false
	}
	w.accumulated++
	return true
}

// Evaluate recomputes eligibility from the clock's current counters.
func (w *WatchClock) Evaluate() EligibilityResult {
	return Evaluate(w.durationSeconds, w.accumulated, w.Ended())
}

// VideoID returns the tracked video's ID.
func (w *WatchClock) VideoID() string { return w.videoID }

// DurationSeconds returns the tracked video's duration.
func (w *WatchClock) DurationSeconds() int { return w.durationSeconds }

// Accumulated returns watched seconds so far.
func (w *WatchClock) Accumulated() int { return w.accumulated }

// State returns the last applied player state.
func (w *WatchClock) State() model.PlayerState { return w.state }

// Ended reports whether the session reached the video's natural end.
func (w *WatchClock) Ended() bool { return w.state == model.PlayerEnded }
