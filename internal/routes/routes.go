package routes

import (
	"github.com/electromart/electromart-backend/internal/handlers"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, webhook *handlers.WebhookHandler, send *handlers.SendHandler, health *handlers.HealthHandler) {

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ElectroMart WhatsApp Bot API Running...",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"health":  "/health",
				"webhook": "/webhook",
				"send":    "/api/whatsapp",
			},
		})
	})

	app.Get("/health", health.Health)

	// ========== WEBHOOK ROUTES ==========
	app.Get("/webhook", webhook.VerifyWebhook)
	app.Post("/webhook", webhook.HandleWebhook)

	// ========== SEND API ==========
	api := app.Group("/api/whatsapp")
	api.Post("/send-text", send.SendText)
	api.Post("/send-media", send.SendMedia)
	api.Post("/send-template", send.SendTemplate)

	// Quick send helper for development
	app.Get("/send/:phone/:msg", send.SendQuick)
}
