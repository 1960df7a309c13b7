package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/middleware"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/model"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/service"
)

type PlaylistHandler struct {
	playlist *service.PlaylistService
}

func NewPlaylistHandler(playlist *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlist: playlist}
}

// List handles GET /api/rooms/:roomId/videos
func (h *PlaylistHandler) List(c fiber.Ctx) error {
	roomID, errMsg := middleware.ValidateRoomID(c.Params("roomId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	videos, err := h.playlist.GetRoomVideos(c.Context(), roomID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load room playlist")
	}
	if videos == nil {
		videos = []model.Video{}
	}

	return c.JSON(model.PlaylistResponse{
		RoomID: roomID,
		Videos: videos,
		Count:  len(videos),
	})
}
