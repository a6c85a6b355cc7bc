package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/wander-backend/internal/services"
)

// ReportHandler serves the latest report for polling clients
type ReportHandler struct {
	reports *services.ReportCache
}

func NewReportHandler(reports *services.ReportCache) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GetReport returns the current cached report as plain text
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	return c.SendString(h.reports.Latest())
}
