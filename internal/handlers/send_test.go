package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/electromart/electromart-backend/internal/models"
	"github.com/electromart/electromart-backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSendApp(t *testing.T) (*fiber.App, *services.MockGateway) {
	t.Helper()

	gateway := services.NewMockGateway(testLogger())
	handler := NewSendHandler(gateway, validator.New(), testLogger())

	app := fiber.New()
	app.Post("/api/whatsapp/send-text", handler.SendText)
	app.Post("/api/whatsapp/send-media", handler.SendMedia)
	app.Post("/api/whatsapp/send-template", handler.SendTemplate)
	app.Get("/send/:phone/:msg", handler.SendQuick)
	return app, gateway
}

func postJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestSendTextEndpoint(t *testing.T) {
	app, gateway := newSendApp(t)

	status := postJSON(t, app, "/api/whatsapp/send-text",
		`{"number": "919876543210", "message": "Your order shipped"}`)
	assert.Equal(t, fiber.StatusOK, status)

	sent := gateway.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "919876543210", sent[0].To)
	assert.Equal(t, "Your order shipped", sent[0].Body)
}

func TestSendTextValidation(t *testing.T) {
	app, gateway := newSendApp(t)

	assert.Equal(t, fiber.StatusBadRequest,
		postJSON(t, app, "/api/whatsapp/send-text", `{"number": "919876543210"}`))
	assert.Equal(t, fiber.StatusBadRequest,
		postJSON(t, app, "/api/whatsapp/send-text", `{not json`))
	assert.Empty(t, gateway.Sent())
}

func TestSendTextGatewayFailure(t *testing.T) {
	app, gateway := newSendApp(t)
	gateway.FailSends = true

	status := postJSON(t, app, "/api/whatsapp/send-text",
		`{"number": "919876543210", "message": "hi"}`)
	assert.Equal(t, fiber.StatusBadGateway, status)
}

func TestSendMediaEndpoint(t *testing.T) {
	app, gateway := newSendApp(t)

	status := postJSON(t, app, "/api/whatsapp/send-media",
		`{"number": "919876543210", "url": "https://example.com/fan.jpg", "caption": "New arrival"}`)
	assert.Equal(t, fiber.StatusOK, status)

	sent := gateway.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, models.MessageTypeImage, sent[0].Type)

	// The url tag rejects non-URLs.
	assert.Equal(t, fiber.StatusBadRequest,
		postJSON(t, app, "/api/whatsapp/send-media",
			`{"number": "919876543210", "url": "not-a-url"}`))
}

func TestSendTemplateEndpoint(t *testing.T) {
	app, gateway := newSendApp(t)

	status := postJSON(t, app, "/api/whatsapp/send-template",
		`{"number": "919876543210", "template_name": "order_update", "parameters": {"1": "ORD-42"}}`)
	assert.Equal(t, fiber.StatusOK, status)

	sent := gateway.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, models.MessageTypeTemplate, sent[0].Type)
	assert.Equal(t, "order_update", sent[0].Body)
}

func TestSendQuickEndpoint(t *testing.T) {
	app, gateway := newSendApp(t)

	req := httptest.NewRequest("GET", "/send/919876543210/hello", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	sent := gateway.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "hello", sent[0].Body)
}
