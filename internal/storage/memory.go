package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/electromart/electromart-backend/internal/models"
)

// MemoryStore holds the message log in memory for development and tests.
type MemoryStore struct {
	logs map[uint]*models.MessageLog
	mu   sync.RWMutex

	logCounter uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		logs: make(map[uint]*models.MessageLog),
	}
}

func (m *MemoryStore) CreateMessageLog(entry *models.MessageLog) (*models.MessageLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logCounter++
	entry.ID = m.logCounter
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = time.Now()
	if entry.SentAt.IsZero() {
		entry.SentAt = time.Now()
	}

	m.logs[entry.ID] = entry
	return entry, nil
}

func (m *MemoryStore) GetMessageLog(id uint) (*models.MessageLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.logs[id]
	if !exists {
		return nil, fmt.Errorf("message log not found")
	}
	return entry, nil
}

func (m *MemoryStore) GetMessageLogsByRecipient(to string) ([]*models.MessageLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*models.MessageLog
	for id := uint(1); id <= m.logCounter; id++ {
		if entry, ok := m.logs[id]; ok && entry.To == to {
			results = append(results, entry)
		}
	}
	return results, nil
}

func (m *MemoryStore) GetMessageLogsByStatus(status string) ([]*models.MessageLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*models.MessageLog
	for id := uint(1); id <= m.logCounter; id++ {
		if entry, ok := m.logs[id]; ok && entry.Status == status {
			results = append(results, entry)
		}
	}
	return results, nil
}

func (m *MemoryStore) CountMessageLogs() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.logs)), nil
}
