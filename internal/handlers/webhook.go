package handlers

import (
	"strings"

	"github.com/electromart/electromart-backend/internal/models"
	"github.com/electromart/electromart-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// WebhookHandler terminates the platform webhook: the GET
// verification handshake and the POST message delivery.
type WebhookHandler struct {
	dispatcher  *services.Dispatcher
	verifyToken string
	log         *logrus.Logger
}

// NewWebhookHandler creates the webhook handler.
func NewWebhookHandler(dispatcher *services.Dispatcher, verifyToken string, log *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{
		dispatcher:  dispatcher,
		verifyToken: verifyToken,
		log:         log,
	}
}

// VerifyWebhook answers the platform's subscription handshake.
func (h *WebhookHandler) VerifyWebhook(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	challenge := c.Query("hub.challenge")
	token := c.Query("hub.verify_token")

	if mode == "subscribe" && token == h.verifyToken {
		return c.SendString(challenge)
	}
	return c.SendStatus(fiber.StatusUnauthorized)
}

// webhookPayload mirrors the Cloud API envelope. It is decoded once
// here at the boundary; nothing downstream re-inspects raw JSON.
type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []webhookMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type webhookMessage struct {
	From string `json:"from"`
	Type string `json:"type"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text"`
	Interactive *struct {
		ButtonReply struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"button_reply"`
	} `json:"interactive"`
	Image *struct {
		ID       string `json:"id"`
		MimeType string `json:"mime_type"`
	} `json:"image"`
}

// HandleWebhook processes one delivery. The webhook is always acked
// with 200: malformed or unsupported payloads are skipped silently
// and never mutate any conversation.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload webhookPayload
	if err := c.BodyParser(&payload); err != nil {
		h.log.WithError(err).Warn("ignoring malformed webhook payload")
		return c.SendStatus(fiber.StatusOK)
	}

	ev, ok := decodeEvent(payload)
	if !ok {
		return c.SendStatus(fiber.StatusOK)
	}

	h.log.WithFields(logrus.Fields{
		"sender": ev.Sender,
		"kind":   ev.Kind,
	}).Info("webhook event received")

	if err := h.dispatcher.HandleEvent(c.UserContext(), ev); err != nil {
		h.log.WithError(err).Error("failed to process webhook event")
	}
	return c.SendStatus(fiber.StatusOK)
}

// decodeEvent reduces the envelope to one typed inbound event. Status
// updates and other message-less deliveries return ok=false.
func decodeEvent(p webhookPayload) (models.InboundEvent, bool) {
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			if len(change.Value.Messages) == 0 {
				continue
			}
			msg := change.Value.Messages[0]
			if msg.From == "" {
				return models.InboundEvent{}, false
			}

			switch {
			case msg.Type == "image" && msg.Image != nil:
				return models.InboundEvent{
					Sender: msg.From,
					Kind:   models.EventImage,
					Image: models.InboundImage{
						MediaID:  msg.Image.ID,
						MimeType: msg.Image.MimeType,
					},
				}, true

			case msg.Interactive != nil && msg.Interactive.ButtonReply.ID != "":
				return models.InboundEvent{
					Sender:   msg.From,
					Kind:     models.EventButton,
					ButtonID: msg.Interactive.ButtonReply.ID,
				}, true

			case msg.Text != nil && strings.TrimSpace(msg.Text.Body) != "":
				return models.InboundEvent{
					Sender: msg.From,
					Kind:   models.EventText,
					Text:   msg.Text.Body,
				}, true
			}
			return models.InboundEvent{}, false
		}
	}
	return models.InboundEvent{}, false
}
