package models

import (
	"time"

	"gorm.io/gorm"
)

// Outbound message types recorded in the audit log.
const (
	MessageTypeText     = "text"
	MessageTypeMenu     = "menu"
	MessageTypeImage    = "image"
	MessageTypeTemplate = "template"
)

// Delivery outcomes. Sends are fire-and-forget, the log is the only
// place a failed delivery is visible.
const (
	MessageStatusSuccess = "success"
	MessageStatusFailed  = "failed"
)

// MessageLog records one outbound send attempt.
type MessageLog struct {
	gorm.Model
	To          string    `json:"to" gorm:"index"`
	MessageType string    `json:"message_type"`
	Content     string    `json:"content"`
	Status      string    `json:"status"`
	SentAt      time.Time `json:"sent_at"`
}
