package engine

// CountdownKind distinguishes the two auto-advance countdowns.
type CountdownKind string

const (
	// CountdownEligibility arms when a session becomes eligible without
	// an explicit certify. 5 ticks.
	CountdownEligibility CountdownKind = "eligibility"
	// CountdownEndOfVideo arms when playback reaches the natural end and
	// a next video exists. 3 ticks.
	CountdownEndOfVideo CountdownKind = "end_of_video"
)

const (
	eligibilityCountdownTicks = 5
	endOfVideoCountdownTicks  = 3
)

// Scheduler is the single countdown slot for one watch session. One slot
// means two countdowns can never run concurrently: arming replaces or is
// refused, it never stacks. The owning session drives Tick from its one
// tick source and acts on expiry while still holding the session lock,
// so an expired countdown can never mutate a cursor it no longer owns.
type Scheduler struct {
	active    bool
	kind      CountdownKind
	remaining int
}

// NewScheduler returns an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// ArmEligibility starts the 5-tick eligibility countdown. Refused when
// any countdown is already running: a running end-of-video countdown is
// shorter and reflects natural completion, so it wins.
func (s *Scheduler) ArmEligibility() bool {
	if s.active {
		return false
	}
	s.active = true
	s.kind = CountdownEligibility
	s.remaining = eligibilityCountdownTicks
	return true
}

// ArmEndOfVideo starts the 3-tick end-of-video countdown, replacing a
// running eligibility countdown. A no-op if the end countdown is already
// running.
func (s *Scheduler) ArmEndOfVideo() bool {
	if s.active && s.kind == CountdownEndOfVideo {
		return false
	}
	s.active = true
	s.kind = CountdownEndOfVideo
	s.remaining = endOfVideoCountdownTicks
	return true
}

// Cancel clears any running countdown. Cancelling an idle scheduler is
// a no-op, never an error.
func (s *Scheduler) Cancel() {
	s.active = false
	s.remaining = 0
}

// Tick decrements the running countdown. Returns the countdown kind and
// true exactly once, on the tick that reaches zero; the scheduler is
// idle again afterwards.
func (s *Scheduler) Tick() (CountdownKind, bool) {
	if !s.active {
		return "", false
	}
	s.remaining--
	if s.remaining > 0 {
		return "", false
	}
	kind := s.kind
	s.active = false
	s.remaining = 0
	return kind, true
}

// Active reports whether a countdown is running.
func (s *Scheduler) Active() bool { return s.active }

// Kind returns the running countdown's kind. Only meaningful while
// Active.
func (s *Scheduler) Kind() CountdownKind { return s.kind }

// Remaining returns the ticks left on the running countdown.
func (s *Scheduler) Remaining() int { return s.remaining }
