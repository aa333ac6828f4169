package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/electromart/electromart-backend/internal/models"
)

// Closed option sets for the choice steps. The numeric codes the user
// replies with are 1-based indexes into these slices.
var (
	appointmentServices = []string{"Consultation", "Installation", "Repair"}
	appointmentTimes    = []string{"10:00 AM", "12:00 PM", "3:00 PM", "5:00 PM"}
)

const (
	appointmentStartPrompt    = "📅 Booking started!\nWhat's your name?"
	appointmentDatePrompt     = "What date works for you?"
	appointmentBookedReply    = "✅ Your appointment has been booked!"
	appointmentCancelledReply = "❌ Appointment cancelled."
	appointmentInvalidOption  = "❌ Invalid option."
)

// AdvanceAppointment consumes one turn of the booking flow. Name and
// date are free text. Service and time only accept their numeric
// choice codes; anything else re-prompts without moving the step.
// Confirmation is a case-insensitive "yes", anything else cancels.
func AdvanceAppointment(s *models.Session, input string) (reply string, done bool) {
	switch s.ApptStep {
	case models.AppointmentAwaitingName:
		s.Fields[models.FieldName] = input
		s.ApptStep = models.AppointmentAwaitingService
		return servicePrompt(), false

	case models.AppointmentAwaitingService:
		idx, ok := parseChoice(input, len(appointmentServices))
		if !ok {
			return appointmentInvalidOption + "\n" + servicePrompt(), false
		}
		s.Fields[models.FieldService] = appointmentServices[idx]
		s.ApptStep = models.AppointmentAwaitingDate
		return appointmentDatePrompt, false

	case models.AppointmentAwaitingDate:
		s.Fields[models.FieldDate] = input
		s.ApptStep = models.AppointmentAwaitingTime
		return timePrompt(), false

	case models.AppointmentAwaitingTime:
		idx, ok := parseChoice(input, len(appointmentTimes))
		if !ok {
			return appointmentInvalidOption + "\n" + timePrompt(), false
		}
		s.Fields[models.FieldTime] = appointmentTimes[idx]
		s.ApptStep = models.AppointmentAwaitingConfirmation
		return appointmentSummary(s), false

	case models.AppointmentAwaitingConfirmation:
		if strings.EqualFold(strings.TrimSpace(input), "yes") {
			return appointmentBookedReply, true
		}
		return appointmentCancelledReply, true
	}

	return appointmentCancelledReply, true
}

// AppointmentProgress renders a read-only view of an in-progress
// booking. It never mutates the session.
func AppointmentProgress(s *models.Session) string {
	var b strings.Builder
	b.WriteString("📋 *Booking progress*\n")
	b.WriteString("Name: " + orDash(s.Fields[models.FieldName]) + "\n")
	b.WriteString("Service: " + orDash(s.Fields[models.FieldService]) + "\n")
	b.WriteString("Date: " + orDash(s.Fields[models.FieldDate]) + "\n")
	b.WriteString("Time: " + orDash(s.Fields[models.FieldTime]) + "\n")
	b.WriteString("\nNext step: " + appointmentStepLabel(s.ApptStep))
	return b.String()
}

func appointmentStepLabel(step models.AppointmentStep) string {
	switch step {
	case models.AppointmentAwaitingName:
		return "your name"
	case models.AppointmentAwaitingService:
		return "pick a service"
	case models.AppointmentAwaitingDate:
		return "pick a date"
	case models.AppointmentAwaitingTime:
		return "pick a time"
	case models.AppointmentAwaitingConfirmation:
		return "confirm the booking"
	}
	return "unknown"
}

// parseChoice parses a 1-based numeric choice code and returns the
// 0-based index, or ok=false when the input is outside the option set.
func parseChoice(input string, max int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > max {
		return 0, false
	}
	return n - 1, true
}

func servicePrompt() string {
	var b strings.Builder
	b.WriteString("Which service do you need?\n")
	for i, svc := range appointmentServices {
		fmt.Fprintf(&b, "%d. %s\n", i+1, svc)
	}
	b.WriteString("\nReply with the number.")
	return b.String()
}

func timePrompt() string {
	var b strings.Builder
	b.WriteString("Pick a time slot:\n")
	for i, t := range appointmentTimes {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	b.WriteString("\nReply with the number.")
	return b.String()
}

func appointmentSummary(s *models.Session) string {
	return fmt.Sprintf(
		"🧾 *Booking Summary*\nName: %s\nService: %s\nDate: %s\nTime: %s\n\nType *yes* to confirm or anything else to cancel.",
		s.Fields[models.FieldName],
		s.Fields[models.FieldService],
		s.Fields[models.FieldDate],
		s.Fields[models.FieldTime],
	)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
