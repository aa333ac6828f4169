package handlers

import (
	"github.com/electromart/electromart-backend/internal/services"
	"github.com/electromart/electromart-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports process health and a few counters.
type HealthHandler struct {
	sessions *services.SessionStore
	store    storage.Store
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(sessions *services.SessionStore, store storage.Store) *HealthHandler {
	return &HealthHandler{
		sessions: sessions,
		store:    store,
	}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	logged, err := h.store.CountMessageLogs()
	storeHealthy := err == nil

	status := "healthy"
	code := fiber.StatusOK
	if !storeHealthy {
		status = "unhealthy"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"services": fiber.Map{
			"sessions_active": h.sessions.ActiveCount(),
			"messages_logged": logged,
			"storage":         storeHealthy,
		},
	})
}
