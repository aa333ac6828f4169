package services

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/electromart/electromart-backend/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MockGateway records outbound messages instead of delivering them.
// Used when no real gateway is configured and by the tests.
type MockGateway struct {
	mu   sync.Mutex
	sent []MockMessage
	log  *logrus.Logger

	// FailSends makes every send return an error, for testing the
	// fire-and-forget delivery contract.
	FailSends bool
}

// MockMessage is one recorded send.
type MockMessage struct {
	ID      string
	To      string
	Type    string
	Body    string
	Buttons []models.Button
}

// NewMockGateway creates an empty recording gateway.
func NewMockGateway(log *logrus.Logger) *MockGateway {
	return &MockGateway{log: log}
}

func (m *MockGateway) record(msg MockMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSends {
		return errMockSendFailed
	}

	msg.ID = uuid.NewString()
	m.sent = append(m.sent, msg)
	if m.log != nil {
		m.log.WithFields(logrus.Fields{
			"to":   msg.To,
			"type": msg.Type,
		}).Debugf("mock send: %s", msg.Body)
	}
	return nil
}

var errMockSendFailed = errors.New("mock gateway: send failed")

func (m *MockGateway) SendText(_ context.Context, to, body string) error {
	return m.record(MockMessage{To: to, Type: models.MessageTypeText, Body: body})
}

func (m *MockGateway) SendMenu(_ context.Context, to, bodyText string, buttons []models.Button) error {
	return m.record(MockMessage{To: to, Type: models.MessageTypeMenu, Body: bodyText, Buttons: buttons})
}

func (m *MockGateway) SendImage(_ context.Context, to, mediaRef, caption string) error {
	return m.record(MockMessage{To: to, Type: models.MessageTypeImage, Body: mediaRef + " " + caption})
}

func (m *MockGateway) SendTemplate(_ context.Context, to, templateName string, _ map[string]string) error {
	return m.record(MockMessage{To: to, Type: models.MessageTypeTemplate, Body: templateName})
}

func (m *MockGateway) UploadMedia(_ context.Context, filePath, _ string) (string, error) {
	if m.log != nil {
		m.log.Debugf("mock upload media: %s", filePath)
	}
	return "mock-media-" + uuid.NewString(), nil
}

func (m *MockGateway) GetMediaURL(_ context.Context, mediaID string) (string, error) {
	return "https://dummy-url.example/" + mediaID, nil
}

func (m *MockGateway) DownloadMedia(_ context.Context, _, saveTo string) error {
	return os.WriteFile(saveTo, []byte("mock media"), 0o644)
}

// Sent returns a copy of everything recorded so far.
func (m *MockGateway) Sent() []MockMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]MockMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

// Reset clears the recorded messages.
func (m *MockGateway) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
}
