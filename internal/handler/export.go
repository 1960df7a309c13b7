package handler

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/middleware"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/service"
)

type ExportHandler struct {
	certs *service.CertificationService
}

func NewExportHandler(certs *service.CertificationService) *ExportHandler {
	return &ExportHandler{certs: certs}
}

// Export handles GET /api/rooms/:roomId/certifications/export
// Streams the room's certification ledger as a CSV attachment.
func (h *ExportHandler) Export(c fiber.Ctx) error {
	roomID, errMsg := middleware.ValidateRoomID(c.Params("roomId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	records, err := h.certs.ListByRoom(c.Context(), roomID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export certifications")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"room_id", "video_id", "uid", "certified_at"})
	for _, r := range records {
		_ = w.Write([]string{r.RoomID, r.VideoID, r.UserID, r.CertifiedAt.UTC().Format(time.RFC3339)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to encode export")
	}

	filename := "certifications-" + roomID + "-" + time.Now().UTC().Format("20060102") + ".csv"
	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
	return c.Send(buf.Bytes())
}
