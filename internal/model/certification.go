package model

import "time"

// CertificationRecord is the durable fact that a user satisfied the watch
// rule for a video in a room. At most one record exists per
// (roomId, videoId, uid) — the primary key makes this structural.
type CertificationRecord struct {
	RoomID      string    `json:"roomId"`
	VideoID     string    `json:"videoId"`
	UserID      string    `json:"uid"`
	CertifiedAt time.Time `json:"certifiedAt"`
}

// CertifyRequest is the API request body for an explicit certify action.
type CertifyRequest struct {
	RoomID    string `json:"roomId"`
	VideoID   string `json:"videoId"`
	UserID    string `json:"uid"`
	SessionID string `json:"sessionId"`
}

// CertifyResponse is the API response after a certify attempt.
// AlreadyCertified=true is a no-op success, not an error.
type CertifyResponse struct {
	Success          bool                 `json:"success"`
	AlreadyCertified bool                 `json:"alreadyCertified,omitempty"`
	Record           *CertificationRecord `json:"record,omitempty"`
}

// CertifiedResponse is the API response for an isCertified query.
type CertifiedResponse struct {
	RoomID    string `json:"roomId"`
	VideoID   string `json:"videoId"`
	UserID    string `json:"uid"`
	Certified bool   `json:"certified"`
}

// StatsResponse holds aggregate platform statistics.
type StatsResponse struct {
	TotalCertifications int `json:"totalCertifications"`
	RoomsTracked        int `json:"roomsTracked"`
	VideosTracked       int `json:"videosTracked"`
	ActiveSessions      int `json:"activeSessions"`
}
