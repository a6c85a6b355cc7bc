package handlers

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/Ananth-NQI/wander-backend/internal/models"
	"github.com/Ananth-NQI/wander-backend/internal/services"
	"github.com/Ananth-NQI/wander-backend/internal/storage"
)

// JourneyHandler handles travel submissions and history lookups
type JourneyHandler struct {
	store    storage.Store
	analyzer Analyzer
	reports  *services.ReportCache
	archive  TicketArchiver // nil when archiving is off
	policy   EmailPolicy
}

// NewJourneyHandler creates a new journey handler
func NewJourneyHandler(store storage.Store, analyzer Analyzer, reports *services.ReportCache, archive TicketArchiver, policy EmailPolicy) *JourneyHandler {
	return &JourneyHandler{
		store:    store,
		analyzer: analyzer,
		reports:  reports,
		archive:  archive,
		policy:   policy,
	}
}

// SaveJourney relays free-form travel text for analysis and stores the report.
// Both JSON and form-encoded bodies are accepted.
func (h *JourneyHandler) SaveJourney(c *fiber.Ctx) error {
	body, err := parseJourney(c)
	if err != nil {
		log.Printf("Error parsing journey: %v", err)
		return failure(c)
	}

	rawEmail, _ := body["email"].(string)
	email, err := h.policy.resolve(rawEmail)
	if err != nil {
		return badRequest(c, err)
	}

	h.reports.SetLatest(models.ReportCompiling)

	// The email travels with the payload so the workflow can call back for this user.
	payload := make(map[string]interface{}, len(body)+2)
	for k, v := range body {
		payload[k] = v
	}
	payload["input_type"] = models.InputTypeText
	payload["email"] = email

	return h.analyzeAndStore(c, payload, &models.Booking{
		InputType: models.InputTypeText,
		Email:     email,
	}, nil)
}

// parseJourney decodes a journey body into a generic map. Form values are
// copied out of the request buffer.
func parseJourney(c *fiber.Ctx) (map[string]interface{}, error) {
	contentType := string(c.Request().Header.ContentType())
	if strings.HasPrefix(contentType, fiber.MIMEApplicationForm) {
		body := make(map[string]interface{})
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			body[string(key)] = string(value)
		})
		return body, nil
	}

	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return nil, err
	}
	return body, nil
}

// UploadTicket relays a base64 ticket photo for analysis and stores the report
func (h *JourneyHandler) UploadTicket(c *fiber.Ctx) error {
	var req models.TicketUpload
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing ticket upload: %v", err)
		return failure(c)
	}
	ticket := utils.CopyString(req.Ticket)

	email, err := h.policy.resolve(utils.CopyString(req.Email))
	if err != nil {
		return badRequest(c, err)
	}
	if ticket == "" {
		return badRequest(c, &ValidationError{Field: "ticket"})
	}

	h.reports.SetLatest(models.ReportScanning)

	// Archive only once the analysis succeeded, so a failed request leaves no object behind.
	var archive func(ctx context.Context, booking *models.Booking)
	if h.archive != nil {
		archive = func(ctx context.Context, booking *models.Booking) {
			key, err := h.archive.Archive(ctx, ticket)
			if err != nil {
				log.Printf("⚠️  Ticket archive failed: %v", err)
				return
			}
			booking.TicketKey = key
		}
	}

	return h.analyzeAndStore(c, map[string]interface{}{
		"input_type":   models.InputTypePhoto,
		"email":        email,
		"image_base64": ticket,
	}, &models.Booking{
		InputType: models.InputTypePhoto,
		Email:     email,
	}, archive)
}

// analyzeAndStore runs the analysis, publishes the report and appends the
// booking. beforeStore, when set, runs between a successful analysis and the
// write. A store failure after a successful analysis still fails the
// request; the report stays visible in the cache only.
func (h *JourneyHandler) analyzeAndStore(c *fiber.Ctx, payload map[string]interface{}, booking *models.Booking, beforeStore func(ctx context.Context, booking *models.Booking)) error {
	ctx := c.UserContext()

	report, err := h.analyzer.Analyze(ctx, payload)
	if err != nil {
		log.Printf("Error: %v", err)
		return failure(c)
	}

	h.reports.SetLatest(report)

	booking.ReportData = report
	if beforeStore != nil {
		beforeStore(ctx, booking)
	}
	if _, err := h.store.CreateBooking(ctx, booking); err != nil {
		log.Printf("Error: %v", err)
		if booking.TicketKey != "" {
			log.Printf("⚠️  Archived ticket %s has no booking", booking.TicketKey)
		}
		return failure(c)
	}

	log.Printf("✅ %s report saved for %s", booking.InputType, booking.Email)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Success"})
}

// GetJourneys returns the booking history for ?email=, newest first. Store
// failures come back as an empty list with a 500, so callers cannot tell an
// outage from an empty history; the failure is only visible in the logs.
func (h *JourneyHandler) GetJourneys(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON([]models.Booking{})
	}

	bookings, err := h.store.GetBookingsByEmail(c.UserContext(), email)
	if err != nil {
		log.Printf("❌ History lookup for %s failed: %v", email, err)
		return c.Status(fiber.StatusInternalServerError).JSON([]models.Booking{})
	}

	return c.JSON(bookings)
}

func failure(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error"})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
}
