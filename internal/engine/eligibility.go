package engine

// EligibilityThresholdSeconds is the watch-time rule split. Videos at or
// above this duration certify on accumulated watch time alone; shorter
// videos must play to their natural end, which blocks trivial
// scrub-to-the-end abuse while bounding the commitment on long content.
const EligibilityThresholdSeconds = 180

// Reason explains an eligibility decision.
type Reason string

const (
	ReasonWatchedThreshold Reason = "watched_threshold"
	ReasonCompleted        Reason = "completed"
	ReasonBelowThreshold   Reason = "below_threshold"
	ReasonNotCompleted     Reason = "not_completed"
)

// EligibilityResult is derived state, recomputed on every tick and
// player-state change. It is never stored.
type EligibilityResult struct {
	Eligible bool
	Reason   Reason
}

// Evaluate applies the certification rule for one session. Pure: safe to
// call redundantly in any event ordering.
//
//	durationSeconds >= 180  ->  accumulatedSeconds >= 180
//	otherwise               ->  ended
func Evaluate(durationSeconds, accumulatedSeconds int, ended bool) EligibilityResult {
	if durationSeconds >= EligibilityThresholdSeconds {
		if accumulatedSeconds >= EligibilityThresholdSeconds {
			return EligibilityResult{Eligible: true, Reason: ReasonWatchedThreshold}
		}
		return EligibilityResult{Eligible: false, Reason: ReasonBelowThreshold}
	}
	if ended {
		return EligibilityResult{Eligible: true, Reason: ReasonCompleted}
	}
	return EligibilityResult{Eligible: false, Reason: ReasonNotCompleted}
}
