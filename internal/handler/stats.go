package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/service"
)

type StatsHandler struct {
	certs *service.CertificationService
}

func NewStatsHandler(certs *service.CertificationService) *StatsHandler {
	return &StatsHandler{certs: certs}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.certs.GetStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to fetch statistics",
			},
		})
	}

	return c.JSON(stats)
}
