package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Field length limits matching database schema constraints.
const (
	MaxRoomIDLen  = 64 // room_videos.room_id VARCHAR(64)
	MaxVideoIDLen = 16 // room_videos.video_id VARCHAR(16)
	MaxUserIDLen  = 64 // certifications.user_id VARCHAR(64)
)

var (
	// videoIDRe matches YouTube video IDs: alphanumeric, dash, underscore.
	videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// roomIDRe matches document IDs issued by the rooms store. No ':' —
	// the change-notification payload uses it as a separator.
	roomIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// userIDRe matches auth-provider user IDs.
	userIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateRoomID checks that a room ID is well-formed and within DB limits.
func ValidateRoomID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "roomId is required"
	}
	if len(id) > MaxRoomIDLen {
		return "", "roomId must be at most 64 characters"
	}
	if !roomIDRe.MatchString(id) {
		return "", "roomId contains invalid characters"
	}
	return id, ""
}

// ValidateVideoID checks that a video ID is well-formed and within DB limits.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	if len(id) > MaxVideoIDLen {
		return "", "videoId must be at most 16 characters"
	}
	if !videoIDRe.MatchString(id) {
		return "", "videoId contains invalid characters"
	}
	return id, ""
}

// ValidateUserID checks that a user ID is well-formed.
func ValidateUserID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "uid is required"
	}
	if len(id) > MaxUserIDLen {
		return "", "uid must be at most 64 characters"
	}
	if !userIDRe.MatchString(id) {
		return "", "uid contains invalid characters"
	}
	return id, ""
}

// ValidateSessionID checks that a session ID is a UUID the manager
// could have issued.
func ValidateSessionID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "sessionId is required"
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", "sessionId must be a valid UUID"
	}
	return id, ""
}
