package services

import (
	"context"
	"time"

	"github.com/electromart/electromart-backend/internal/models"
	"github.com/electromart/electromart-backend/internal/storage"
	"github.com/sirupsen/logrus"
)

// AuditedGateway wraps another gateway and records every send attempt
// in the message log, success or failure. Media transfer calls pass
// through unrecorded.
type AuditedGateway struct {
	Gateway
	store storage.Store
	log   *logrus.Logger
}

// NewAuditedGateway decorates gw with message logging.
func NewAuditedGateway(gw Gateway, store storage.Store, log *logrus.Logger) *AuditedGateway {
	return &AuditedGateway{
		Gateway: gw,
		store:   store,
		log:     log,
	}
}

func (a *AuditedGateway) SendText(ctx context.Context, to, body string) error {
	err := a.Gateway.SendText(ctx, to, body)
	a.record(to, models.MessageTypeText, body, err)
	return err
}

func (a *AuditedGateway) SendMenu(ctx context.Context, to, bodyText string, buttons []models.Button) error {
	err := a.Gateway.SendMenu(ctx, to, bodyText, buttons)
	a.record(to, models.MessageTypeMenu, bodyText, err)
	return err
}

func (a *AuditedGateway) SendImage(ctx context.Context, to, mediaRef, caption string) error {
	err := a.Gateway.SendImage(ctx, to, mediaRef, caption)
	a.record(to, models.MessageTypeImage, mediaRef, err)
	return err
}

func (a *AuditedGateway) SendTemplate(ctx context.Context, to, templateName string, params map[string]string) error {
	err := a.Gateway.SendTemplate(ctx, to, templateName, params)
	a.record(to, models.MessageTypeTemplate, templateName, err)
	return err
}

func (a *AuditedGateway) record(to, msgType, content string, sendErr error) {
	status := models.MessageStatusSuccess
	if sendErr != nil {
		status = models.MessageStatusFailed
	}

	entry := &models.MessageLog{
		To:          to,
		MessageType: msgType,
		Content:     content,
		Status:      status,
		SentAt:      time.Now(),
	}
	if _, err := a.store.CreateMessageLog(entry); err != nil {
		a.log.WithError(err).Warn("failed to record message log")
	}
}
