package storage

import "github.com/electromart/electromart-backend/internal/models"

// Store defines the interface for persisted audit data. Conversation
// sessions never go through here, they live in memory for the process
// lifetime.
type Store interface {
	// Message log operations
	CreateMessageLog(entry *models.MessageLog) (*models.MessageLog, error)
	GetMessageLog(id uint) (*models.MessageLog, error)
	GetMessageLogsByRecipient(to string) ([]*models.MessageLog, error)
	GetMessageLogsByStatus(status string) ([]*models.MessageLog, error)
	CountMessageLogs() (int64, error)
}
