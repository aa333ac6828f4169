package handlers

import (
	"github.com/electromart/electromart-backend/internal/models"
	"github.com/electromart/electromart-backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// SendHandler exposes the outbound gateway over HTTP for operators
// and integrations.
type SendHandler struct {
	gateway  services.Gateway
	validate *validator.Validate
	log      *logrus.Logger
}

// NewSendHandler creates the send API handler.
func NewSendHandler(gateway services.Gateway, validate *validator.Validate, log *logrus.Logger) *SendHandler {
	return &SendHandler{
		gateway:  gateway,
		validate: validate,
		log:      log,
	}
}

// SendText handles POST /api/whatsapp/send-text.
func (h *SendHandler) SendText(c *fiber.Ctx) error {
	var req models.SendTextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.gateway.SendText(c.UserContext(), req.Number, req.Message); err != nil {
		h.log.WithError(err).Warn("send-text delivery failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to send message"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// SendMedia handles POST /api/whatsapp/send-media.
func (h *SendHandler) SendMedia(c *fiber.Ctx) error {
	var req models.SendMediaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.gateway.SendImage(c.UserContext(), req.Number, req.URL, req.Caption); err != nil {
		h.log.WithError(err).Warn("send-media delivery failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to send media"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// SendTemplate handles POST /api/whatsapp/send-template.
func (h *SendHandler) SendTemplate(c *fiber.Ctx) error {
	var req models.SendTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.gateway.SendTemplate(c.UserContext(), req.Number, req.TemplateName, req.Parameters); err != nil {
		h.log.WithError(err).Warn("send-template delivery failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to send template"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// SendQuick handles GET /send/:phone/:msg, a development helper.
func (h *SendHandler) SendQuick(c *fiber.Ctx) error {
	phone := c.Params("phone")
	body := c.Params("msg")
	if err := h.gateway.SendText(c.UserContext(), phone, body); err != nil {
		return c.Status(fiber.StatusBadGateway).SendString("Failed")
	}
	return c.SendString("Sent")
}
