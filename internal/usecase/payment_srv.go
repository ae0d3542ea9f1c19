package usecase

import (
	"context"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/dto/response"
	"hotel-reservation/internal/notify"
	"hotel-reservation/pkg/apperror"
	"hotel-reservation/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PaymentService interface {
	ProcessPayment(ctx context.Context, actor entity.Actor, bookingID string, req *request.ProcessPaymentRequest) (*response.PaymentResponse, error)
	GetPaymentByBookingID(ctx context.Context, actor entity.Actor, bookingID string) (*response.PaymentResponse, error)
	GetUserPayments(ctx context.Context, actor entity.Actor) ([]response.PaymentResponse, error)

	// Admin endpoints
	RefundPayment(ctx context.Context, paymentID string) (*response.RefundResponse, error)
}

type paymentService struct {
	repo     *repository.Repository
	notifier notify.Notifier
	clock    Clock
	log      *zap.Logger
}

func NewPaymentService(repo *repository.Repository, notifier notify.Notifier, clock Clock, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		log:      log.With(zap.String("service", "payment")),
	}
}

// ProcessPayment records a completed payment and confirms the booking in
// the same unit of work. There is no external gateway; payment is a recorded fact.
func (s *paymentService) ProcessPayment(ctx context.Context, actor entity.Actor, bookingID string, req *request.ProcessPaymentRequest) (*response.PaymentResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Process payment validation failed", zap.Error(err))
		return nil, err
	}

	id, err := parseID("booking", bookingID)
	if err != nil {
		return nil, err
	}

	discount := decimal.Zero
	if req.Discount != nil {
		discount = *req.Discount
	}
	if discount.IsNegative() {
		return nil, apperror.InvalidArgument("discount must not be negative")
	}

	var (
		booking *entity.Booking
		payment *entity.Payment
	)
	err = s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		booking, err = tx.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			return apperror.NotFound("booking %s not found", bookingID)
		}
		if !actor.CanAccess(booking.UserID) {
			return apperror.Forbidden("you are not allowed to pay for this booking")
		}

		existing, err := tx.Payment.FindByBookingID(ctx, booking.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.Conflict("booking %s already has a payment", booking.Reference)
		}
		if booking.Status != entity.BookingStatusPending {
			return apperror.Conflict("booking %s is %s, only pending bookings can be paid", booking.Reference, booking.Status)
		}

		amount, ok := entity.PaymentAmount(booking.TotalPrice, discount)
		if !ok {
			return apperror.InvalidArgument("discount %s exceeds booking total %s", discount.StringFixed(2), booking.TotalPrice.StringFixed(2))
		}

		now := s.clock.now()
		payment = &entity.Payment{
			Base:           entity.NewBase(now),
			BookingID:      booking.ID,
			Amount:         amount,
			DiscountAmount: discount,
			Method:         entity.PaymentMethod(req.Method),
			Status:         entity.PaymentStatusCompleted,
			TransactionID:  utils.GenerateTransactionID(),
			PaidAt:         now,
		}
		if err := tx.Payment.Create(ctx, payment); err != nil {
			return err
		}

		if err := tx.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusConfirmed); err != nil {
			return err
		}
		booking.Status = entity.BookingStatusConfirmed
		return nil
	})
	if err != nil {
		return nil, classify(s.log, "process payment", err)
	}

	s.log.Info("Payment processed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", booking.ID.String()),
		zap.String("amount", payment.Amount.String()),
		zap.String("discount", payment.DiscountAmount.String()),
		zap.String("method", string(payment.Method)),
	)

	s.notifier.Notify(s.paymentEvent(ctx, notify.KindPaymentCompleted, booking, payment))

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

// RefundPayment reverses a completed payment and cancels its booking atomically.
func (s *paymentService) RefundPayment(ctx context.Context, paymentID string) (*response.RefundResponse, error) {
	id, err := parseID("payment", paymentID)
	if err != nil {
		return nil, err
	}

	var (
		payment *entity.Payment
		booking *entity.Booking
		room    *entity.Room
	)
	err = s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		payment, err = tx.Payment.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if payment == nil {
			return apperror.NotFound("payment %s not found", paymentID)
		}
		if payment.Status != entity.PaymentStatusCompleted {
			return apperror.Conflict("payment %s is %s, only completed payments can be refunded", paymentID, payment.Status)
		}

		booking, err = tx.Booking.FindByIDForUpdate(ctx, payment.BookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return apperror.NotFound("booking %s not found", payment.BookingID)
		}
		switch booking.Status {
		case entity.BookingStatusConfirmed, entity.BookingStatusCancelled:
		default:
			return apperror.Conflict("booking %s is %s and cannot be refunded", booking.Reference, booking.Status)
		}

		if err := tx.Payment.UpdateStatus(ctx, payment.ID, entity.PaymentStatusRefunded); err != nil {
			return err
		}
		payment.Status = entity.PaymentStatusRefunded

		if booking.Status != entity.BookingStatusCancelled {
			if err := tx.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
				return err
			}
			booking.Status = entity.BookingStatusCancelled
		}

		room, err = tx.Room.FindByID(ctx, booking.RoomID)
		return err
	})
	if err != nil {
		return nil, classify(s.log, "refund payment", err)
	}

	s.log.Info("Payment refunded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", booking.ID.String()),
		zap.String("amount", payment.Amount.String()),
	)

	event := bookingEvent(notify.KindPaymentRefunded, booking, room, s.clock)
	event.Amount = payment.Amount
	s.notifier.Notify(event)

	return &response.RefundResponse{
		Payment: response.PaymentToResponse(payment),
		Booking: response.BookingToResponse(booking, room),
	}, nil
}

func (s *paymentService) GetPaymentByBookingID(ctx context.Context, actor entity.Actor, bookingID string) (*response.PaymentResponse, error) {
	id, err := parseID("booking", bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, classify(s.log, "get booking", err)
	}
	if booking == nil {
		return nil, apperror.NotFound("booking %s not found", bookingID)
	}
	if !actor.CanAccess(booking.UserID) {
		return nil, apperror.Forbidden("you are not allowed to view this payment")
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, classify(s.log, "get payment", err)
	}
	if payment == nil {
		return nil, apperror.NotFound("no payment recorded for booking %s", booking.Reference)
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) GetUserPayments(ctx context.Context, actor entity.Actor) ([]response.PaymentResponse, error) {
	payments, err := s.repo.Payment.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, classify(s.log, "get user payments", err)
	}

	out := make([]response.PaymentResponse, len(payments))
	for i, payment := range payments {
		out[i] = response.PaymentToResponse(payment)
	}
	return out, nil
}

// paymentEvent resolves the room after commit; a lookup failure only costs
// the room number in the message.
func (s *paymentService) paymentEvent(ctx context.Context, kind notify.Kind, booking *entity.Booking, payment *entity.Payment) notify.Event {
	room, err := s.repo.Room.FindByID(ctx, booking.RoomID)
	if err != nil {
		s.log.Warn("Failed to load room for notification", zap.Error(err))
	}
	event := bookingEvent(kind, booking, room, s.clock)
	event.Amount = payment.Amount
	return event
}
