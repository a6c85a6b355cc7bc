package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/Ananth-NQI/wander-backend/internal/models"
	"github.com/Ananth-NQI/wander-backend/internal/services"
	"github.com/Ananth-NQI/wander-backend/internal/storage"
)

// CallbackHandler receives reports pushed by the n8n workflow
type CallbackHandler struct {
	store        storage.Store
	reports      *services.ReportCache
	defaultEmail string
}

func NewCallbackHandler(store storage.Store, reports *services.ReportCache, defaultEmail string) *CallbackHandler {
	return &CallbackHandler{
		store:        store,
		reports:      reports,
		defaultEmail: defaultEmail,
	}
}

// HandleCallback publishes the pushed report and stores it as an AI_Push booking
func (h *CallbackHandler) HandleCallback(c *fiber.Ctx) error {
	var payload models.CallbackPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Callback Error: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Error")
	}

	// Form values alias fiber's request buffer; both strings outlive the request.
	report := utils.CopyString(payload.Report)
	email := utils.CopyString(payload.Email)

	log.Printf("📩 Received private report for: %s", email)

	h.reports.SetLatest(report)

	if email == "" {
		email = h.defaultEmail
	}

	_, err := h.store.CreateBooking(c.UserContext(), &models.Booking{
		InputType:  models.InputTypeAIPush,
		Email:      email,
		ReportData: report,
	})
	if err != nil {
		log.Printf("Callback Error: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Error")
	}

	return c.Status(fiber.StatusOK).SendString("Server Updated")
}
