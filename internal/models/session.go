package models

import "time"

// WorkflowKind tags which conversation a session is driving.
type WorkflowKind string

const (
	WorkflowOrder       WorkflowKind = "order"
	WorkflowAppointment WorkflowKind = "appointment"
)

// OrderStep is the position inside the order capture flow.
type OrderStep int

const (
	OrderAwaitingProduct OrderStep = iota
	OrderAwaitingQuantity
	OrderAwaitingAddress
	OrderAwaitingConfirmation
)

// AppointmentStep is the position inside the booking flow.
type AppointmentStep int

const (
	AppointmentAwaitingName AppointmentStep = iota
	AppointmentAwaitingService
	AppointmentAwaitingDate
	AppointmentAwaitingTime
	AppointmentAwaitingConfirmation
)

// Field keys collected by the workflows. Quantity and date stay
// free text, they are never parsed or validated.
const (
	FieldProduct  = "product"
	FieldQuantity = "quantity"
	FieldAddress  = "address"
	FieldName     = "name"
	FieldService  = "service"
	FieldDate     = "date"
	FieldTime     = "time"
)

// Session is the per-user record for one in-progress workflow.
// Only one of OrderStep/ApptStep is meaningful, selected by Kind.
type Session struct {
	User      string            `json:"user"`
	Kind      WorkflowKind      `json:"kind"`
	OrderStep OrderStep         `json:"order_step,omitempty"`
	ApptStep  AppointmentStep   `json:"appt_step,omitempty"`
	Fields    map[string]string `json:"fields"`
	StartedAt time.Time         `json:"started_at"`
}

// NewSession creates a fresh session at the first step of kind.
func NewSession(user string, kind WorkflowKind) *Session {
	return &Session{
		User:      user,
		Kind:      kind,
		Fields:    make(map[string]string),
		StartedAt: time.Now(),
	}
}

// Clone returns a copy safe to read outside the store's lock.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Fields = make(map[string]string, len(s.Fields))
	for k, v := range s.Fields {
		cp.Fields[k] = v
	}
	return &cp
}
