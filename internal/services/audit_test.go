package services

import (
	"context"
	"testing"

	"github.com/electromart/electromart-backend/internal/models"
	"github.com/electromart/electromart-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditedGatewayRecordsSuccess(t *testing.T) {
	store := storage.NewMemoryStore()
	mock := NewMockGateway(testLogger())
	gw := NewAuditedGateway(mock, store, testLogger())
	ctx := context.Background()

	require.NoError(t, gw.SendText(ctx, "919876543210", "hello"))
	require.NoError(t, gw.SendMenu(ctx, "919876543210", "Choose:", mainMenuButtons()))

	logs, err := store.GetMessageLogsByRecipient("919876543210")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, models.MessageTypeText, logs[0].MessageType)
	assert.Equal(t, models.MessageStatusSuccess, logs[0].Status)
	assert.Equal(t, "hello", logs[0].Content)
	assert.Equal(t, models.MessageTypeMenu, logs[1].MessageType)
}

func TestAuditedGatewayRecordsFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	mock := NewMockGateway(testLogger())
	mock.FailSends = true
	gw := NewAuditedGateway(mock, store, testLogger())

	err := gw.SendText(context.Background(), "user", "hello")
	assert.Error(t, err, "the underlying error still propagates")

	failed, storeErr := store.GetMessageLogsByStatus(models.MessageStatusFailed)
	require.NoError(t, storeErr)
	require.Len(t, failed, 1)
	assert.Equal(t, "hello", failed[0].Content)
}

func TestAuditedGatewayMediaPassThrough(t *testing.T) {
	store := storage.NewMemoryStore()
	gw := NewAuditedGateway(NewMockGateway(testLogger()), store, testLogger())

	url, err := gw.GetMediaURL(context.Background(), "media-1")
	require.NoError(t, err)
	assert.Contains(t, url, "media-1")

	count, err := store.CountMessageLogs()
	require.NoError(t, err)
	assert.Zero(t, count, "media transfers are not audited")
}
