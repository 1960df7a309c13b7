package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/engine"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/middleware"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/model"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/service"
)

type SessionHandler struct {
	manager  *engine.Manager
	playlist *service.PlaylistService
	certs    *service.CertificationService
}

func NewSessionHandler(manager *engine.Manager, playlist *service.PlaylistService, certs *service.CertificationService) *SessionHandler {
	return &SessionHandler{manager: manager, playlist: playlist, certs: certs}
}

// Start handles POST /api/rooms/:roomId/sessions
func (h *SessionHandler) Start(c fiber.Ctx) error {
	roomID, errMsg := middleware.ValidateRoomID(c.Params("roomId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.StartSessionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	userID, errMsg := middleware.ValidateUserID(req.UserID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	// Deep link is optional; an invalid or unknown ID is ignored (the
	// cursor stays at 0) rather than failing the session start.
	deepLink := ""
	if req.VideoID != "" {
		if id, errMsg := middleware.ValidateVideoID(req.VideoID); errMsg == "" {
			deepLink = id
		}
	}

	videos, err := h.playlist.GetRoomVideos(c.Context(), roomID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load room playlist")
	}
	if len(videos) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Room has no playlist")
	}

	sess := h.manager.Start(roomID, userID, videos, deepLink)
	h.reloadCertified(c, sess)

	return c.Status(fiber.StatusCreated).JSON(sess.Snapshot())
}

// Get handles GET /api/rooms/:roomId/sessions/:sessionId
func (h *SessionHandler) Get(c fiber.Ctx) error {
	sess, errResp := h.resolveSession(c)
	if sess == nil {
		return errResp
	}
	return c.JSON(sess.Snapshot())
}

// PostEvent handles POST /api/rooms/:roomId/sessions/:sessionId/events
func (h *SessionHandler) PostEvent(c fiber.Ctx) error {
	sess, errResp := h.resolveSession(c)
	if sess == nil {
		return errResp
	}

	var req model.PlayerEventRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	state, ok := model.ParsePlayerState(req.State)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD",
			"state must be one of: unstarted, playing, paused, buffering, ended")
	}

	sess.HandleState(state)
	return c.JSON(sess.Snapshot())
}

// Select handles POST /api/rooms/:roomId/sessions/:sessionId/select
func (h *SessionHandler) Select(c fiber.Ctx) error {
	sess, errResp := h.resolveSession(c)
	if sess == nil {
		return errResp
	}

	var req model.SelectRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	switch {
	case req.VideoID != "":
		// Deep link: an unknown ID fails silently, the snapshot simply
		// shows the unchanged cursor.
		videoID, errMsg := middleware.ValidateVideoID(req.VideoID)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		if sess.SelectExternal(videoID) {
			h.reloadCertified(c, sess)
		}
	case req.Index != nil:
		if !sess.SelectManual(*req.Index) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "index out of range")
		}
		h.reloadCertified(c, sess)
	default:
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "videoId or index is required")
	}

	return c.JSON(sess.Snapshot())
}

// Delete handles DELETE /api/rooms/:roomId/sessions/:sessionId
func (h *SessionHandler) Delete(c fiber.Ctx) error {
	sessionID, errMsg := middleware.ValidateSessionID(c.Params("sessionId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if !h.manager.Close(sessionID) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Session not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// resolveSession validates path params and looks up the live session.
// On failure it writes the error response and returns a nil session.
func (h *SessionHandler) resolveSession(c fiber.Ctx) (*engine.Session, error) {
	roomID, errMsg := middleware.ValidateRoomID(c.Params("roomId"))
	if errMsg != "" {
		return nil, middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	sessionID, errMsg := middleware.ValidateSessionID(c.Params("sessionId"))
	if errMsg != "" {
		return nil, middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	sess, ok := h.manager.Get(sessionID)
	if !ok || sess.RoomID != roomID {
		return nil, middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Session not found")
	}
	return sess, nil
}

// reloadCertified loads the prior-certification fact for the session's
// current video so the passive countdown never arms for a video already
// on record. A store failure here is non-fatal: the keyed write still
// rejects duplicates.
func (h *SessionHandler) reloadCertified(c fiber.Ctx, sess *engine.Session) {
	snap := sess.Snapshot()
	certified, err := h.certs.IsCertified(c.Context(), snap.RoomID, snap.VideoID, snap.UserID)
	if err != nil {
		middleware.Logger.Warn().Err(err).Str("video_id", snap.VideoID).Msg("certification preload failed")
		return
	}
	sess.SetCertified(certified)
}
