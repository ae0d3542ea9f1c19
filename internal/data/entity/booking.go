package entity

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Lifecycle is the four-state view used by clients that do not track check-in.
type Lifecycle string

const (
	LifecyclePending   Lifecycle = "pending"
	LifecycleConfirmed Lifecycle = "confirmed"
	LifecycleCompleted Lifecycle = "completed"
	LifecycleCancelled Lifecycle = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusCheckedIn, BookingStatusCancelled},
	BookingStatusCheckedIn:  {BookingStatusCheckedOut},
	BookingStatusCheckedOut: {},
	BookingStatusCancelled:  {},
}

// Statuses that hold a room on the front-desk lists.
var InHouseStatuses = []BookingStatus{BookingStatusConfirmed, BookingStatusCheckedIn}

func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	return slices.Contains(bookingTransitions[s], target)
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

func (s BookingStatus) CanBeCancelled() bool {
	return s.CanTransitionTo(BookingStatusCancelled)
}

// IsCompleted reports whether the stay is over and may be reviewed.
func (s BookingStatus) IsCompleted() bool {
	return s == BookingStatusCheckedOut
}

func (s BookingStatus) Lifecycle() Lifecycle {
	switch s {
	case BookingStatusConfirmed:
		return LifecycleConfirmed
	case BookingStatusCheckedIn, BookingStatusCheckedOut:
		return LifecycleCompleted
	case BookingStatusCancelled:
		return LifecycleCancelled
	default:
		return LifecyclePending
	}
}

func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus accepts the five booking states in any case, plus
// "completed" as an alias of checked_out.
func ParseBookingStatus(s string) (BookingStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == string(LifecycleCompleted) {
		return BookingStatusCheckedOut, nil
	}
	status := BookingStatus(normalized)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

type Booking struct {
	Base
	Reference      string          `db:"reference"`
	UserID         uuid.UUID       `db:"user_id"`
	RoomID         uuid.UUID       `db:"room_id"`
	CheckInDate    time.Time       `db:"check_in_date"`
	CheckOutDate   time.Time       `db:"check_out_date"`
	Guests         int             `db:"guests"`
	TotalPrice     decimal.Decimal `db:"total_price"`
	Status         BookingStatus   `db:"status"`
	SpecialRequest *string         `db:"special_request"`
}

func (b *Booking) Nights() int {
	return Nights(b.CheckInDate, b.CheckOutDate)
}

// Overlaps uses the closed interval test: a stay ending on day D conflicts
// with one starting on day D.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return DatesOverlap(b.CheckInDate, b.CheckOutDate, checkIn, checkOut)
}

// DatesOverlap reports aIn <= bOut && aOut >= bIn.
func DatesOverlap(aIn, aOut, bIn, bOut time.Time) bool {
	return !aIn.After(bOut) && !aOut.Before(bIn)
}

// Nights counts calendar days between two dates.
func Nights(checkIn, checkOut time.Time) int {
	in := DateOf(checkIn)
	out := DateOf(checkOut)
	return int(out.Sub(in).Hours() / 24)
}

// DateOf truncates t to midnight UTC of its calendar day in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StayPrice is nightly price times whole nights.
func StayPrice(nightly decimal.Decimal, checkIn, checkOut time.Time) decimal.Decimal {
	return nightly.Mul(decimal.NewFromInt(int64(Nights(checkIn, checkOut))))
}
