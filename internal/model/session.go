package model

// PlayerState mirrors the discrete states the embedded player reports.
type PlayerState string

const (
	PlayerUnstarted PlayerState = "unstarted"
	PlayerPlaying   PlayerState = "playing"
	PlayerPaused    PlayerState = "paused"
	PlayerBuffering PlayerState = "buffering"
	PlayerEnded     PlayerState = "ended"
)

// ParsePlayerState maps a raw event string to a PlayerState.
func ParsePlayerState(s string) (PlayerState, bool) {
	switch PlayerState(s) {
	case PlayerUnstarted, PlayerPlaying, PlayerPaused, PlayerBuffering, PlayerEnded:
		return PlayerState(s), true
	}
	return "", false
}

// CountdownSnapshot describes the countdown currently armed for a session.
type CountdownSnapshot struct {
	Kind             string `json:"kind"`
	RemainingSeconds int    `json:"remainingSeconds"`
}

// SessionSnapshot is the read-only view of a live watch session returned
// to the hosting player view.
type SessionSnapshot struct {
	SessionID          string             `json:"sessionId"`
	RoomID             string             `json:"roomId"`
	UserID             string             `json:"uid"`
	VideoID            string             `json:"videoId"`
	Index              int                `json:"index"`
	PlaylistLength     int                `json:"playlistLength"`
	PlayerState        PlayerState        `json:"playerState"`
	AccumulatedSeconds int                `json:"accumulatedSeconds"`
	Eligible           bool               `json:"eligible"`
	EligibilityReason  string             `json:"eligibilityReason"`
	Certified          bool               `json:"certified"`
	Countdown          *CountdownSnapshot `json:"countdown,omitempty"`
}

// StartSessionRequest is the API request body for opening a watch session.
type StartSessionRequest struct {
	UserID  string `json:"uid"`
	VideoID string `json:"videoId,omitempty"` // optional deep link
}

// PlayerEventRequest is the API request body for a player state notification.
type PlayerEventRequest struct {
	State string `json:"state"`
}

// SelectRequest is the API request body for switching videos. Exactly one
// of VideoID (deep link) or Index (direct user choice) is used.
type SelectRequest struct {
	VideoID string `json:"videoId,omitempty"`
	Index   *int   `json:"index,omitempty"`
}
