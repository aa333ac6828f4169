package models

// EventKind discriminates the three inbound payload shapes. The
// webhook handler decodes the raw platform payload exactly once;
// everything downstream works with this typed event.
type EventKind string

const (
	EventText   EventKind = "text"
	EventButton EventKind = "button"
	EventImage  EventKind = "image"
)

// InboundImage references a received media object on the platform.
type InboundImage struct {
	MediaID  string `json:"media_id"`
	MimeType string `json:"mime_type"`
}

// InboundEvent is one decoded webhook message.
type InboundEvent struct {
	Sender   string       `json:"sender"`
	Kind     EventKind    `json:"kind"`
	Text     string       `json:"text,omitempty"`
	ButtonID string       `json:"button_id,omitempty"`
	Image    InboundImage `json:"image,omitempty"`
}

// Button is one reply button on an interactive menu.
type Button struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
