package storage

import (
	"github.com/electromart/electromart-backend/internal/models"
	"gorm.io/gorm"
)

// DatabaseStore persists the message log in PostgreSQL via GORM.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (d *DatabaseStore) CreateMessageLog(entry *models.MessageLog) (*models.MessageLog, error) {
	if err := d.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (d *DatabaseStore) GetMessageLog(id uint) (*models.MessageLog, error) {
	var entry models.MessageLog
	if err := d.db.First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (d *DatabaseStore) GetMessageLogsByRecipient(to string) ([]*models.MessageLog, error) {
	var entries []*models.MessageLog
	if err := d.db.Where("\"to\" = ?", to).Order("id").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (d *DatabaseStore) GetMessageLogsByStatus(status string) ([]*models.MessageLog, error) {
	var entries []*models.MessageLog
	if err := d.db.Where("status = ?", status).Order("id").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (d *DatabaseStore) CountMessageLogs() (int64, error) {
	var count int64
	if err := d.db.Model(&models.MessageLog{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
