package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/wander-backend/internal/storage"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	Version string
	Storage string
	store   storage.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version, storageName string, store storage.Store) *HealthHandler {
	return &HealthHandler{
		Version: version,
		Storage: storageName,
		store:   store,
	}
}

// Check returns the health status of the service
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "healthy"
	statusCode := fiber.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		status = "unhealthy"
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"service": "Wander Backend",
		"version": h.Version,
		"storage": h.Storage,
	})
}
