package services

import (
	"fmt"
	"strings"

	"github.com/electromart/electromart-backend/internal/models"
)

// Prompts for the order capture flow.
const (
	orderStartPrompt    = "🛒 Order Started!\nWhat product do you want to order?"
	orderQuantityPrompt = "How many quantity?"
	orderAddressPrompt  = "Please provide your delivery address:"
	orderPlacedReply    = "✅ Your order has been placed successfully!"
	orderCancelledReply = "❌ Order cancelled."
)

// AdvanceOrder consumes one turn of the order flow. Every step accepts
// the input as-is; quantity is kept as text on purpose. At the
// confirmation step anything other than "confirm" cancels the order,
// and both outcomes are terminal.
func AdvanceOrder(s *models.Session, input string) (reply string, done bool) {
	switch s.OrderStep {
	case models.OrderAwaitingProduct:
		s.Fields[models.FieldProduct] = input
		s.OrderStep = models.OrderAwaitingQuantity
		return orderQuantityPrompt, false

	case models.OrderAwaitingQuantity:
		s.Fields[models.FieldQuantity] = input
		s.OrderStep = models.OrderAwaitingAddress
		return orderAddressPrompt, false

	case models.OrderAwaitingAddress:
		s.Fields[models.FieldAddress] = input
		s.OrderStep = models.OrderAwaitingConfirmation
		return orderSummary(s), false

	case models.OrderAwaitingConfirmation:
		if strings.EqualFold(strings.TrimSpace(input), "confirm") {
			return orderPlacedReply, true
		}
		return orderCancelledReply, true
	}

	// Unreachable with a well-formed session.
	return orderCancelledReply, true
}

func orderSummary(s *models.Session) string {
	return fmt.Sprintf(
		"🧾 *Order Summary*\nProduct: %s\nQuantity: %s\nAddress: %s\n\nType *confirm* to place the order or *cancel*.",
		s.Fields[models.FieldProduct],
		s.Fields[models.FieldQuantity],
		s.Fields[models.FieldAddress],
	)
}
