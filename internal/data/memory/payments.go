package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"

	"github.com/google/uuid"
)

type paymentRepo struct{ v view }

var _ repository.PaymentRepository = paymentRepo{}

func (r paymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	return r.v.do(ctx, func(st *state) error {
		for _, p := range st.payments {
			if p.BookingID == payment.BookingID || p.TransactionID == payment.TransactionID {
				return fmt.Errorf("create payment for booking %s: %w", payment.BookingID, repository.ErrDuplicate)
			}
		}
		st.payments[payment.ID] = *payment
		st.track(payment.ID)
		return nil
	})
}

func (r paymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var out *entity.Payment
	err := r.v.do(ctx, func(st *state) error {
		if p, ok := st.payments[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r paymentRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return r.FindByID(ctx, id)
}

func (r paymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	var out *entity.Payment
	err := r.v.do(ctx, func(st *state) error {
		for _, p := range st.payments {
			if p.BookingID == bookingID {
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r paymentRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Payment, error) {
	var out []*entity.Payment
	err := r.v.do(ctx, func(st *state) error {
		for _, p := range st.payments {
			if b, ok := st.bookings[p.BookingID]; ok && b.UserID == userID {
				out = append(out, &p)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].PaidAt.Equal(out[j].PaidAt) {
				return out[i].PaidAt.After(out[j].PaidAt)
			}
			return st.seq[out[i].ID] > st.seq[out[j].ID]
		})
		return nil
	})
	return out, err
}

func (r paymentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	return r.v.do(ctx, func(st *state) error {
		p, ok := st.payments[id]
		if !ok {
			return fmt.Errorf("payment %s not found", id)
		}
		p.Status = status
		p.UpdatedAt = time.Now()
		st.payments[id] = p
		return nil
	})
}
