package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/electromart/electromart-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *SessionStore, *MockGateway) {
	t.Helper()

	sessions := NewSessionStore()
	gateway := NewMockGateway(testLogger())
	resolver := NewIntentResolver(models.ManualRules, nil, testLogger())
	d := NewDispatcher(sessions, resolver, gateway, t.TempDir(), testLogger())
	return d, sessions, gateway
}

func textEvent(sender, text string) models.InboundEvent {
	return models.InboundEvent{Sender: sender, Kind: models.EventText, Text: text}
}

func buttonEvent(sender, id string) models.InboundEvent {
	return models.InboundEvent{Sender: sender, Kind: models.EventButton, ButtonID: id}
}

func TestDispatcherGreetingSendsMenu(t *testing.T) {
	d, _, gateway := newTestDispatcher(t)

	require.NoError(t, d.HandleEvent(context.Background(), textEvent("919876543210", "hello")))

	sent := gateway.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, models.MessageTypeMenu, sent[0].Type)
	assert.Equal(t, "Welcome 👋\nChoose an option:", sent[0].Body)
	require.Len(t, sent[0].Buttons, 5)
	assert.Equal(t, ButtonProducts, sent[0].Buttons[0].ID)
	assert.Equal(t, ButtonStatus, sent[0].Buttons[4].ID)
}

func TestDispatcherUnknownTextFallsBackToDefault(t *testing.T) {
	d, _, gateway := newTestDispatcher(t)

	require.NoError(t, d.HandleEvent(context.Background(), textEvent("user", "asdf qwerty")))

	sent := gateway.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "I didn't understand. Type *menu* to see options.", sent[0].Body)
}

func TestDispatcherOrderFlowEndToEnd(t *testing.T) {
	d, sessions, gateway := newTestDispatcher(t)
	ctx := context.Background()
	user := "919876543210"

	turns := []string{"order", "Smart Bulb", "2", "12 MG Road, Kochi", "confirm"}
	for _, turn := range turns {
		require.NoError(t, d.HandleEvent(ctx, textEvent(user, turn)))
	}

	sent := gateway.Sent()
	require.Len(t, sent, len(turns), "exactly one outbound per inbound turn")
	assert.Contains(t, sent[0].Body, "🛒 Order Started!")
	assert.Equal(t, "How many quantity?", sent[1].Body)
	assert.Contains(t, sent[3].Body, "Order Summary")
	assert.Equal(t, "✅ Your order has been placed successfully!", sent[4].Body)

	assert.Nil(t, sessions.Get(user), "session must be retired after confirmation")
}

func TestDispatcherActiveSessionConsumesIntentWords(t *testing.T) {
	d, sessions, gateway := newTestDispatcher(t)
	ctx := context.Background()

	require.NoError(t, d.HandleEvent(ctx, textEvent("user", "order")))

	// "price" would normally resolve to the pricing reply, but an
	// active order session captures it as the product name.
	require.NoError(t, d.HandleEvent(ctx, textEvent("user", "price")))

	sent := gateway.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "How many quantity?", sent[1].Body)

	s := sessions.Get("user")
	require.NotNil(t, s)
	assert.Equal(t, "price", s.Fields[models.FieldProduct])
}

func TestDispatcherButtonsBypassResolver(t *testing.T) {
	d, sessions, gateway := newTestDispatcher(t)
	ctx := context.Background()

	require.NoError(t, d.HandleEvent(ctx, buttonEvent("user", ButtonPricing)))
	require.NoError(t, d.HandleEvent(ctx, buttonEvent("user", ButtonProducts)))
	require.NoError(t, d.HandleEvent(ctx, buttonEvent("user", ButtonBook)))

	sent := gateway.Sent()
	require.Len(t, sent, 3)
	assert.Equal(t, "💰 Pricing starts at ₹499.", sent[0].Body)
	assert.Contains(t, sent[1].Body, "📦 Products:")
	assert.Contains(t, sent[2].Body, "📅 Booking started!")

	s := sessions.Get("user")
	require.NotNil(t, s)
	assert.Equal(t, models.WorkflowAppointment, s.Kind)
}

func TestDispatcherUnknownButton(t *testing.T) {
	d, _, gateway := newTestDispatcher(t)

	require.NoError(t, d.HandleEvent(context.Background(), buttonEvent("user", "MENU_NOPE")))

	sent := gateway.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Invalid option.", sent[0].Body)
}

func TestDispatcherStatusButton(t *testing.T) {
	d, _, gateway := newTestDispatcher(t)
	ctx := context.Background()

	require.NoError(t, d.HandleEvent(ctx, buttonEvent("user", ButtonStatus)))
	require.Len(t, gateway.Sent(), 1)
	assert.Contains(t, gateway.Sent()[0].Body, "no booking in progress")

	gateway.Reset()

	require.NoError(t, d.HandleEvent(ctx, buttonEvent("user", ButtonBook)))
	require.NoError(t, d.HandleEvent(ctx, textEvent("user", "Priya")))
	require.NoError(t, d.HandleEvent(ctx, buttonEvent("user", ButtonStatus)))

	sent := gateway.Sent()
	require.Len(t, sent, 3)
	assert.Contains(t, sent[2].Body, "Booking progress")
	assert.Contains(t, sent[2].Body, "Name: Priya")
	assert.Contains(t, sent[2].Body, "Next step: pick a service")
}

func TestDispatcherOrderButtonRestartsActiveFlow(t *testing.T) {
	d, sessions, _ := newTestDispatcher(t)
	ctx := context.Background()

	require.NoError(t, d.HandleEvent(ctx, textEvent("user", "order")))
	require.NoError(t, d.HandleEvent(ctx, textEvent("user", "Smart Bulb")))
	require.NoError(t, d.HandleEvent(ctx, buttonEvent("user", ButtonOrder)))

	s := sessions.Get("user")
	require.NotNil(t, s)
	assert.Equal(t, models.OrderAwaitingProduct, s.OrderStep)
	assert.Empty(t, s.Fields)
}

func TestDispatcherImageSavedAndAcknowledged(t *testing.T) {
	d, _, gateway := newTestDispatcher(t)

	ev := models.InboundEvent{
		Sender: "user",
		Kind:   models.EventImage,
		Image:  models.InboundImage{MediaID: "media-42", MimeType: "image/png"},
	}
	require.NoError(t, d.HandleEvent(context.Background(), ev))

	sent := gateway.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "📸 Image saved at:")
	assert.Contains(t, sent[0].Body, "received_media-42.png")

	path := filepath.Join(d.mediaDir, "received_media-42.png")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestDispatcherDeliveryFailureIsContained(t *testing.T) {
	d, sessions, gateway := newTestDispatcher(t)
	gateway.FailSends = true

	err := d.HandleEvent(context.Background(), textEvent("user", "order"))
	assert.NoError(t, err, "send failures must not bubble up")

	// The state transition committed even though delivery failed.
	s := sessions.Get("user")
	require.NotNil(t, s)
	assert.Equal(t, models.WorkflowOrder, s.Kind)
}

func TestDispatcherIgnoresBlankEvents(t *testing.T) {
	d, _, gateway := newTestDispatcher(t)
	ctx := context.Background()

	require.NoError(t, d.HandleEvent(ctx, textEvent("user", "   ")))
	require.NoError(t, d.HandleEvent(ctx, textEvent("", "hello")))

	assert.Empty(t, gateway.Sent())
}

func TestDispatcherCancelWithoutSession(t *testing.T) {
	d, _, gateway := newTestDispatcher(t)

	require.NoError(t, d.HandleEvent(context.Background(), textEvent("user", "cancel")))

	sent := gateway.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "There's no active order or booking to cancel.", sent[0].Body)
}
