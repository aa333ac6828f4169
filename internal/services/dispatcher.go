package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/electromart/electromart-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// Menu button ids, echoed back by the platform on a button tap.
const (
	ButtonProducts = "MENU_PRODUCTS"
	ButtonPricing  = "MENU_PRICING"
	ButtonOrder    = "MENU_ORDER"
	ButtonBook     = "MENU_BOOK"
	ButtonStatus   = "MENU_STATUS"
)

// Canned replies.
const (
	menuBody          = "Welcome 👋\nChoose an option:"
	replyProducts     = "📦 Products:\n- Bulbs\n- Fans\n- Cable\n- Automation"
	replyPricing      = "💰 Pricing starts at ₹499."
	replyHelp         = "Sure! How can I assist?"
	replyDefault      = "I didn't understand. Type *menu* to see options."
	replyNoConfirm    = "There's nothing to confirm right now. Type *menu* to see options."
	replyNoCancel     = "There's no active order or booking to cancel."
	replyNoBooking    = "You have no booking in progress. Type *book* to start one."
	replyInvalidBtn   = "Invalid option."
	replyImageReceipt = "📸 Image received!"
)

// mainMenuButtons returns the interactive menu button set.
func mainMenuButtons() []models.Button {
	return []models.Button{
		{ID: ButtonProducts, Title: "📦 Products"},
		{ID: ButtonPricing, Title: "💰 Pricing"},
		{ID: ButtonOrder, Title: "🛒 Order"},
		{ID: ButtonBook, Title: "📅 Book"},
		{ID: ButtonStatus, Title: "📋 My Booking"},
	}
}

// Dispatcher is the single entry point for decoded inbound events.
// An active session always wins; button payloads map directly to
// actions; everything else goes through the intent resolver. Exactly
// one outbound message is produced per handled event.
type Dispatcher struct {
	sessions *SessionStore
	resolver *IntentResolver
	gateway  Gateway
	mediaDir string
	log      *logrus.Logger
}

// NewDispatcher wires the dispatcher. All collaborators are explicit;
// there are no ambient singletons.
func NewDispatcher(sessions *SessionStore, resolver *IntentResolver, gateway Gateway, mediaDir string, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		sessions: sessions,
		resolver: resolver,
		gateway:  gateway,
		mediaDir: mediaDir,
		log:      log,
	}
}

// HandleEvent routes one inbound event. Unrecognized shapes are
// skipped silently; nothing here is fatal to the process.
func (d *Dispatcher) HandleEvent(ctx context.Context, ev models.InboundEvent) error {
	if ev.Sender == "" {
		return nil
	}

	switch ev.Kind {
	case models.EventImage:
		return d.handleImage(ctx, ev)
	case models.EventButton:
		return d.handleButton(ctx, ev)
	case models.EventText:
		return d.handleText(ctx, ev)
	}
	return nil
}

func (d *Dispatcher) handleText(ctx context.Context, ev models.InboundEvent) error {
	text := strings.TrimSpace(ev.Text)
	if text == "" {
		return nil
	}

	// An active session consumes the input before any intent logic.
	if reply, ok := d.advanceActive(ev.Sender, text); ok {
		return d.send(ctx, ev.Sender, reply)
	}

	// No session lock is held across the classifier call.
	intent := d.resolver.Resolve(ctx, text)
	return d.actOnIntent(ctx, ev.Sender, intent)
}

// advanceActive feeds one turn into the sender's workflow. ok is
// false when the sender has no active session.
func (d *Dispatcher) advanceActive(user, input string) (string, bool) {
	var reply string
	_, err := d.sessions.Advance(user, func(s *models.Session) bool {
		var done bool
		switch s.Kind {
		case models.WorkflowOrder:
			reply, done = AdvanceOrder(s, input)
		case models.WorkflowAppointment:
			reply, done = AdvanceAppointment(s, input)
		default:
			// Unknown kind, retire the session rather than wedge the user.
			reply, done = replyDefault, true
		}
		return done
	})
	if err != nil {
		return "", false
	}
	return reply, true
}

func (d *Dispatcher) actOnIntent(ctx context.Context, user string, intent models.Intent) error {
	switch intent {
	case models.IntentOrder:
		return d.startOrder(ctx, user)
	case models.IntentAppointment:
		return d.startAppointment(ctx, user)
	case models.IntentGreeting:
		return d.sendMenu(ctx, user)
	case models.IntentPricing:
		return d.send(ctx, user, replyPricing)
	case models.IntentHelp:
		return d.send(ctx, user, replyHelp)
	case models.IntentConfirm, models.IntentReject:
		return d.send(ctx, user, replyNoConfirm)
	case models.IntentCancel:
		return d.send(ctx, user, replyNoCancel)
	default:
		return d.send(ctx, user, replyDefault)
	}
}

// handleButton maps a tapped button straight to its action. Buttons
// are unambiguous, so the resolver is bypassed entirely.
func (d *Dispatcher) handleButton(ctx context.Context, ev models.InboundEvent) error {
	switch ev.ButtonID {
	case ButtonProducts:
		return d.send(ctx, ev.Sender, replyProducts)
	case ButtonPricing:
		return d.send(ctx, ev.Sender, replyPricing)
	case ButtonOrder:
		return d.startOrder(ctx, ev.Sender)
	case ButtonBook:
		return d.startAppointment(ctx, ev.Sender)
	case ButtonStatus:
		return d.send(ctx, ev.Sender, d.bookingProgress(ev.Sender))
	default:
		return d.send(ctx, ev.Sender, replyInvalidBtn)
	}
}

// handleImage downloads the received image and acknowledges it. Any
// failure along the media path degrades to a plain receipt notice.
func (d *Dispatcher) handleImage(ctx context.Context, ev models.InboundEvent) error {
	path, err := d.saveImage(ctx, ev)
	if err != nil {
		d.log.WithError(err).WithField("media_id", ev.Image.MediaID).Warn("failed to save received image")
		return d.send(ctx, ev.Sender, replyImageReceipt)
	}
	return d.send(ctx, ev.Sender, fmt.Sprintf("📸 Image saved at: %s", path))
}

func (d *Dispatcher) saveImage(ctx context.Context, ev models.InboundEvent) (string, error) {
	url, err := d.gateway.GetMediaURL(ctx, ev.Image.MediaID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(d.mediaDir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	ext := "jpg"
	if strings.Contains(ev.Image.MimeType, "png") {
		ext = "png"
	}
	path := filepath.Join(d.mediaDir, fmt.Sprintf("received_%s.%s", ev.Image.MediaID, ext))

	if err := d.gateway.DownloadMedia(ctx, url, path); err != nil {
		return "", err
	}
	return path, nil
}

func (d *Dispatcher) startOrder(ctx context.Context, user string) error {
	// The step transition commits regardless of delivery outcome.
	d.sessions.Start(user, models.WorkflowOrder)
	return d.send(ctx, user, orderStartPrompt)
}

func (d *Dispatcher) startAppointment(ctx context.Context, user string) error {
	d.sessions.Start(user, models.WorkflowAppointment)
	return d.send(ctx, user, appointmentStartPrompt)
}

// bookingProgress is a read-only projection; the session is untouched.
func (d *Dispatcher) bookingProgress(user string) string {
	s := d.sessions.Get(user)
	if s == nil || s.Kind != models.WorkflowAppointment {
		return replyNoBooking
	}
	return AppointmentProgress(s)
}

// send delivers one text reply. Delivery is fire-and-forget: failures
// are logged and contained, the session transition already committed.
func (d *Dispatcher) send(ctx context.Context, to, body string) error {
	if err := d.gateway.SendText(ctx, to, body); err != nil {
		d.log.WithError(err).WithField("to", to).Warn("failed to send reply")
	}
	return nil
}

func (d *Dispatcher) sendMenu(ctx context.Context, to string) error {
	if err := d.gateway.SendMenu(ctx, to, menuBody, mainMenuButtons()); err != nil {
		d.log.WithError(err).WithField("to", to).Warn("failed to send menu")
	}
	return nil
}
