package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"

	"github.com/google/uuid"
)

type bookingRepo struct{ v view }

var _ repository.BookingRepository = bookingRepo{}

// overlapping mirrors the bookings_no_overlap exclusion constraint.
func overlapping(st *state, roomID uuid.UUID, checkIn, checkOut time.Time, except uuid.UUID) bool {
	for id, b := range st.bookings {
		if id == except || b.RoomID != roomID || b.Status == entity.BookingStatusCancelled {
			continue
		}
		if b.Overlaps(checkIn, checkOut) {
			return true
		}
	}
	return false
}

// newestFirst orders by created_at DESC with insertion order as tie-breaker.
func newestFirst(st *state, bookings []*entity.Booking) []*entity.Booking {
	sort.Slice(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return st.seq[a.ID] > st.seq[b.ID]
	})
	return bookings
}

// oldestFirst expects a slice already ordered by newestFirst.
func oldestFirst(bookings []*entity.Booking) []*entity.Booking {
	slices.Reverse(bookings)
	return bookings
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (r bookingRepo) filter(ctx context.Context, keep func(b *entity.Booking) bool) ([]*entity.Booking, error) {
	var out []*entity.Booking
	err := r.v.do(ctx, func(st *state) error {
		for _, b := range st.bookings {
			if keep(&b) {
				out = append(out, &b)
			}
		}
		newestFirst(st, out)
		return nil
	})
	return out, err
}

func (r bookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	return r.v.do(ctx, func(st *state) error {
		if booking.Status != entity.BookingStatusCancelled &&
			overlapping(st, booking.RoomID, booking.CheckInDate, booking.CheckOutDate, booking.ID) {
			return fmt.Errorf("create booking %s: %w", booking.Reference, repository.ErrBookingOverlap)
		}
		st.bookings[booking.ID] = *booking
		st.track(booking.ID)
		return nil
	})
}

func (r bookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var out *entity.Booking
	err := r.v.do(ctx, func(st *state) error {
		if b, ok := st.bookings[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r bookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r bookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	out, err := r.filter(ctx, func(b *entity.Booking) bool { return b.UserID == userID })
	return page(out, limit, offset), err
}

func (r bookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	out, err := r.filter(ctx, func(b *entity.Booking) bool { return b.UserID == userID })
	return int64(len(out)), err
}

func (r bookingRepo) FindAll(ctx context.Context, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	out, err := r.filter(ctx, func(b *entity.Booking) bool { return status == nil || b.Status == *status })
	return page(out, limit, offset), err
}

func (r bookingRepo) Count(ctx context.Context, status *entity.BookingStatus) (int64, error) {
	out, err := r.filter(ctx, func(b *entity.Booking) bool { return status == nil || b.Status == *status })
	return int64(len(out)), err
}

func (r bookingRepo) HasOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	var exists bool
	err := r.v.do(ctx, func(st *state) error {
		exists = overlapping(st, roomID, checkIn, checkOut, uuid.Nil)
		return nil
	})
	return exists, err
}

func (r bookingRepo) FindCheckInsByDate(ctx context.Context, date time.Time, statuses []entity.BookingStatus) ([]*entity.Booking, error) {
	out, err := r.filter(ctx, func(b *entity.Booking) bool {
		return b.CheckInDate.Equal(date) && slices.Contains(statuses, b.Status)
	})
	if err != nil {
		return nil, err
	}
	return oldestFirst(out), nil
}

func (r bookingRepo) FindCheckOutsByDate(ctx context.Context, date time.Time, statuses []entity.BookingStatus) ([]*entity.Booking, error) {
	out, err := r.filter(ctx, func(b *entity.Booking) bool {
		return b.CheckOutDate.Equal(date) && slices.Contains(statuses, b.Status)
	})
	if err != nil {
		return nil, err
	}
	return oldestFirst(out), nil
}

func (r bookingRepo) FindActiveOnDate(ctx context.Context, date time.Time) ([]*entity.Booking, error) {
	out, err := r.filter(ctx, func(b *entity.Booking) bool {
		return !b.CheckInDate.After(date) && !b.CheckOutDate.Before(date) &&
			slices.Contains(entity.InHouseStatuses, b.Status)
	})
	if err != nil {
		return nil, err
	}
	oldestFirst(out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CheckInDate.Before(out[j].CheckInDate) })
	return out, nil
}

func (r bookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	return r.v.do(ctx, func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return fmt.Errorf("booking %s not found", id)
		}
		if b.Status == entity.BookingStatusCancelled && status != entity.BookingStatusCancelled &&
			overlapping(st, b.RoomID, b.CheckInDate, b.CheckOutDate, b.ID) {
			return fmt.Errorf("update booking %s status: %w", id, repository.ErrBookingOverlap)
		}
		b.Status = status
		b.UpdatedAt = time.Now()
		st.bookings[id] = b
		return nil
	})
}
