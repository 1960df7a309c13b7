package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/middleware"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/model"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/service"
)

type CertificationHandler struct {
	certs *service.CertificationService
}

func NewCertificationHandler(certs *service.CertificationService) *CertificationHandler {
	return &CertificationHandler{certs: certs}
}

// Certify handles POST /api/certifications
func (h *CertificationHandler) Certify(c fiber.Ctx) error {
	var req model.CertifyRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	roomID, errMsg := middleware.ValidateRoomID(req.RoomID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	videoID, errMsg := middleware.ValidateVideoID(req.VideoID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	userID, errMsg := middleware.ValidateUserID(req.UserID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	sessionID, errMsg := middleware.ValidateSessionID(req.SessionID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	req.RoomID, req.VideoID, req.UserID, req.SessionID = roomID, videoID, userID, sessionID

	resp, err := h.certs.Certify(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveSession):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NO_ACTIVE_SESSION",
				"No active watch session for this request")
		case errors.Is(err, service.ErrNotEligible):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "NOT_ELIGIBLE",
				"Watch requirement not met for this video")
		default:
			middleware.Logger.Error().Err(err).Str("video_id", videoID).Msg("certify failed")
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to record certification")
		}
	}

	status := fiber.StatusCreated
	if resp.AlreadyCertified {
		status = fiber.StatusOK
	} else if Metrics.CertificationsTotal != nil {
		Metrics.CertificationsTotal.Inc()
	}
	return c.Status(status).JSON(resp)
}

// Check handles GET /api/certifications?roomId=&videoId=&uid=
func (h *CertificationHandler) Check(c fiber.Ctx) error {
	roomID, errMsg := middleware.ValidateRoomID(c.Query("roomId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	videoID, errMsg := middleware.ValidateVideoID(c.Query("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	userID, errMsg := middleware.ValidateUserID(c.Query("uid"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	certified, err := h.certs.IsCertified(c.Context(), roomID, videoID, userID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
			"Failed to check certification")
	}

	return c.JSON(model.CertifiedResponse{
		RoomID:    roomID,
		VideoID:   videoID,
		UserID:    userID,
		Certified: certified,
	})
}

// ListByUser handles GET /api/users/:uid/certifications
func (h *CertificationHandler) ListByUser(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateUserID(c.Params("uid"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	records, err := h.certs.ListByUser(c.Context(), userID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
			"Failed to list certifications")
	}
	if records == nil {
		records = []model.CertificationRecord{}
	}

	return c.JSON(fiber.Map{
		"uid":            userID,
		"certifications": records,
		"count":          len(records),
	})
}
