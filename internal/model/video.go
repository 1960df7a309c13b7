package model

// Video is one entry in a room's ordered playlist. The engine treats it
// as immutable; the host room supplies the list.
type Video struct {
	VideoID         string `json:"videoId"`
	Title           string `json:"title,omitempty"`
	DurationSeconds int    `json:"durationSeconds"`
	Position        int    `json:"position"`
	CertifiedCount  int    `json:"certifiedCount"`
}

// PlaylistResponse is the API response for a room playlist lookup.
type PlaylistResponse struct {
	RoomID string  `json:"roomId"`
	Videos []Video `json:"videos"`
	Count  int     `json:"count"`
}
