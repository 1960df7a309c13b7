package engine

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/model"
)

// Hooks let the host observe engine events without the engine importing
// transport or metrics packages. All hooks are optional and are invoked
// outside the session lock.
type Hooks struct {
	OnCursorChange     func(roomID, sessionID string, index int)
	OnCountdownExpired func(kind CountdownKind)
	OnWatchSecond      func()
}

// Session is the live tracking state for one user watching one room
// playlist on one device. It owns the watch clock, the countdown slot
// and the playlist cursor, and serializes every event — player state
// changes, ticks, selections, certification, teardown — under one lock.
// A single ticker goroutine is the only tick source, so a session can
// never run two accumulators or two countdowns, and a tick that races
// teardown sees closed and does nothing.
type Session struct {
	ID     string
	RoomID string
	UserID string

	clk    clockwork.Clock
	log    zerolog.Logger
	hooks  Hooks
	videos []model.Video

	mu               sync.Mutex
	cursor           *Cursor
	watch            *WatchClock
	sched            *Scheduler
	certified        bool
	eligibilityFired bool // eligibility countdown already expired for this video
	closed           bool
	done             chan struct{}
}

func newSession(id, roomID, userID string, videos []model.Video, clk clockwork.Clock, log zerolog.Logger, hooks Hooks) *Session {
	s := &Session{
		ID:     id,
		RoomID: roomID,
		UserID: userID,
		clk:    clk,
		log:    log.With().Str("room_id", roomID).Str("session_id", id).Logger(),
		hooks:  hooks,
		videos: videos,
		cursor: NewCursor(len(videos)),
		sched:  NewScheduler(),
		done:   make(chan struct{}),
	}
	s.watch = NewWatchClock(s.current())
	return s
}

func (s *Session) current() model.Video {
	if len(s.videos) == 0 {
		return model.Video{}
	}
	return s.videos[s.cursor.Index()]
}

// run is the session's single tick source.
func (s *Session) run() {
	ticker := s.clk.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.Chan():
			s.tick()
		case <-s.done:
			return
		}
	}
}

// tick advances the watch clock and the countdown slot by one second.
func (s *Session) tick() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	watched := s.watch.Tick()

	// Countdown decrement happens before arming: a countdown armed on
	// this tick gets its full length starting next tick.
	kind, expired := s.sched.Tick()
	advancedTo := -1
	if expired {
		if kind == CountdownEligibility {
			s.eligibilityFired = true
		}
		if s.cursor.Advance() {
			s.resetForCurrentLocked()
			advancedTo = s.cursor.Index()
			s.log.Info().
				Str("kind", string(kind)).
				Int("index", advancedTo).
				Str("video_id", s.watch.VideoID()).
				Msg("auto-advance")
		}
	}
	s.maybeArmEligibilityLocked()
	s.mu.Unlock()

	if watched && s.hooks.OnWatchSecond != nil {
		s.hooks.OnWatchSecond()
	}
	if expired && s.hooks.OnCountdownExpired != nil {
		s.hooks.OnCountdownExpired(kind)
	}
	if advancedTo >= 0 {
		s.notifyCursorChange(advancedTo)
	}
}

// HandleState applies a player state notification from the external
// player. Reaching the natural end arms the end-of-video countdown when
// a next video exists; the shorter end countdown replaces a running
// eligibility countdown.
func (s *Session) HandleState(st model.PlayerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	wasEnded := s.watch.Ended()
	s.watch.SetState(st)

	if st == model.PlayerEnded && !wasEnded && s.watch.Ended() {
		if !s.cursor.AtEnd() {
			s.sched.ArmEndOfVideo()
			s.log.Debug().Str("video_id", s.watch.VideoID()).Msg("end-of-video countdown armed")
		}
	}
	s.maybeArmEligibilityLocked()
}

// maybeArmEligibilityLocked arms the eligibility countdown when the
// session is eligible, not certified, and no countdown is running. A
// countdown that already expired for this video is not re-armed.
func (s *Session) maybeArmEligibilityLocked() {
	if s.certified || s.eligibilityFired || s.sched.Active() {
		return
	}
	if !s.watch.Evaluate().Eligible {
		return
	}
	s.sched.ArmEligibility()
	s.log.Debug().Str("video_id", s.watch.VideoID()).Msg("eligibility countdown armed")
}

// SelectManual switches to the video at index i (direct user choice).
// Out-of-range indexes are refused with no state change.
func (s *Session) SelectManual(i int) bool {
	s.mu.Lock()
	if s.closed || !s.cursor.Select(i) {
		s.mu.Unlock()
		return false
	}
	s.resetForCurrentLocked()
	idx := s.cursor.Index()
	s.mu.Unlock()

	s.notifyCursorChange(idx)
	return true
}

// SelectExternal resolves a deep-linked video ID against the playlist.
// An unknown ID leaves the session untouched — deep links fail silently.
func (s *Session) SelectExternal(videoID string) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	found := -1
	for i, v := range s.videos {
		if v.VideoID == videoID {
			found = i
			break
		}
	}
	if found < 0 {
		s.mu.Unlock()
		return false
	}
	s.cursor.Select(found)
	s.resetForCurrentLocked()
	s.mu.Unlock()

	s.notifyCursorChange(found)
	return true
}

// resetForCurrentLocked starts a fresh watch session for the video at
// the cursor: accumulated seconds reset, countdown cancelled. The
// certified flag is cleared; the service layer reloads it from the
// store.
func (s *Session) resetForCurrentLocked() {
	s.sched.Cancel()
	s.watch = NewWatchClock(s.current())
	s.certified = false
	s.eligibilityFired = false
}

// SetCertified loads the prior-certification fact for the current video.
// A session already on record never arms the eligibility countdown; a
// running one is cancelled.
func (s *Session) SetCertified(certified bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.certified = certified
	if certified && s.sched.Active() && s.sched.Kind() == CountdownEligibility {
		s.sched.Cancel()
	}
}

// MarkCertified records that an explicit certify succeeded for the
// current video. It pre-empts the passive countdown.
func (s *Session) MarkCertified() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.certified = true
	s.sched.Cancel()
}

// Snapshot returns the session's current read-only view.
func (s *Session) Snapshot() model.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	elig := s.watch.Evaluate()
	snap := model.SessionSnapshot{
		SessionID:          s.ID,
		RoomID:             s.RoomID,
		UserID:             s.UserID,
		VideoID:            s.watch.VideoID(),
		Index:              s.cursor.Index(),
		PlaylistLength:     s.cursor.Length(),
		PlayerState:        s.watch.State(),
		AccumulatedSeconds: s.watch.Accumulated(),
		Eligible:           elig.Eligible,
		EligibilityReason:  string(elig.Reason),
		Certified:          s.certified,
	}
	if s.sched.Active() {
		snap.Countdown = &model.CountdownSnapshot{
			Kind:             string(s.sched.Kind()),
			RemainingSeconds: s.sched.Remaining(),
		}
	}
	return snap
}

// Close tears the session down: the countdown slot is cleared and the
// tick source stops. Closing twice is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.sched.Cancel()
	close(s.done)
	s.mu.Unlock()

	s.log.Debug().Msg("session closed")
}

func (s *Session) notifyCursorChange(index int) {
	if s.hooks.OnCursorChange != nil {
		s.hooks.OnCursorChange(s.RoomID, s.ID, index)
	}
}
