package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/wander-backend/internal/handlers"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, journeys *handlers.JourneyHandler, callbacks *handlers.CallbackHandler, reports *handlers.ReportHandler, health *handlers.HealthHandler) {

	app.Get("/health", health.Check)

	// API routes
	api := app.Group("/api")

	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Wander Backend!",
			"version": health.Version,
			"endpoints": fiber.Map{
				"save_journey":  "POST /api/save-journey",
				"upload_ticket": "POST /api/upload-ticket",
				"get_journeys":  "GET /api/get-journeys?email=",
				"n8n_callback":  "POST /api/n8n-callback",
				"get_report":    "GET /api/get-report",
			},
		})
	})

	// Submissions (relayed to the n8n workflow)
	api.Post("/save-journey", journeys.SaveJourney)
	api.Post("/upload-ticket", journeys.UploadTicket)

	// History and polling
	api.Get("/get-journeys", journeys.GetJourneys)
	api.Get("/get-report", reports.GetReport)

	// ========== WEBHOOK ROUTES ==========
	// n8n pushes finished reports here
	api.Post("/n8n-callback", callbacks.HandleCallback)
}
