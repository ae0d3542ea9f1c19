// Package notify delivers guest notifications after a unit of work commits.
// Delivery is best effort: failures are logged and never reach the caller.
package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindBookingCreated       Kind = "booking_created"
	KindBookingCancelled     Kind = "booking_cancelled"
	KindBookingStatusChanged Kind = "booking_status_changed"
	KindPaymentCompleted     Kind = "payment_completed"
	KindPaymentRefunded      Kind = "payment_refunded"
)

type Event struct {
	Kind       Kind
	UserID     uuid.UUID
	BookingID  uuid.UUID
	Reference  string
	RoomNumber string
	CheckIn    time.Time
	CheckOut   time.Time
	Status     string
	Amount     decimal.Decimal
	OccurredAt time.Time
}

// Notifier accepts events without blocking the caller.
type Notifier interface {
	Notify(event Event)
}

// Nop drops every event.
type Nop struct{}

func (Nop) Notify(Event) {}

// Message renders the subject and body of the mail sent for an event.
func (e Event) Message() (subject, body string) {
	stay := fmt.Sprintf("room %s, %s to %s", e.RoomNumber, e.CheckIn.Format(time.DateOnly), e.CheckOut.Format(time.DateOnly))

	switch e.Kind {
	case KindBookingCreated:
		subject = fmt.Sprintf("Booking %s received", e.Reference)
		body = fmt.Sprintf("Your booking %s for %s is pending payment. Total: %s.", e.Reference, stay, e.Amount.StringFixed(2))
	case KindBookingCancelled:
		subject = fmt.Sprintf("Booking %s cancelled", e.Reference)
		body = fmt.Sprintf("Your booking %s for %s has been cancelled.", e.Reference, stay)
	case KindBookingStatusChanged:
		subject = fmt.Sprintf("Booking %s updated", e.Reference)
		body = fmt.Sprintf("Your booking %s for %s is now %s.", e.Reference, stay, e.Status)
	case KindPaymentCompleted:
		subject = fmt.Sprintf("Payment received for booking %s", e.Reference)
		body = fmt.Sprintf("We received %s for booking %s (%s). Your stay is confirmed.", e.Amount.StringFixed(2), e.Reference, stay)
	case KindPaymentRefunded:
		subject = fmt.Sprintf("Refund issued for booking %s", e.Reference)
		body = fmt.Sprintf("A refund of %s was issued for booking %s (%s). The booking is cancelled.", e.Amount.StringFixed(2), e.Reference, stay)
	default:
		subject = fmt.Sprintf("Booking %s", e.Reference)
		body = fmt.Sprintf("There is an update on booking %s.", e.Reference)
	}
	return subject, body
}
