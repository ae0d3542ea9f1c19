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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Guest endpoints
	CreateBooking(ctx context.Context, actor entity.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, actor entity.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, actor entity.Actor, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, actor entity.Actor, bookingID string) error

	// Admin endpoints
	GetAllBookings(ctx context.Context, req *request.BookingFilterRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	GetCheckInsForToday(ctx context.Context) ([]response.BookingResponse, error)
	GetCheckOutsForToday(ctx context.Context) ([]response.BookingResponse, error)
	GetActiveBookingsOn(ctx context.Context, date string) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	notifier notify.Notifier
	clock    Clock
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, notifier notify.Notifier, clock Clock, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, actor entity.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	roomID, err := parseID("room", req.RoomID)
	if err != nil {
		return nil, err
	}

	checkIn, err := utils.ParseDate(req.CheckInDate)
	if err != nil {
		return nil, apperror.InvalidArgument("invalid check-in date %q", req.CheckInDate)
	}
	checkOut, err := utils.ParseDate(req.CheckOutDate)
	if err != nil {
		return nil, apperror.InvalidArgument("invalid check-out date %q", req.CheckOutDate)
	}
	if !checkIn.Before(checkOut) {
		return nil, apperror.InvalidArgument("check-out date must be after check-in date")
	}

	var (
		booking *entity.Booking
		room    *entity.Room
	)
	err = s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		// Locking the room serializes concurrent bookings for it.
		room, err = tx.Room.FindByIDForUpdate(ctx, roomID)
		if err != nil {
			return err
		}
		if room == nil {
			return apperror.NotFound("room %s not found", req.RoomID)
		}
		if !room.Active {
			return apperror.Conflict("room %s is not available for booking", room.RoomNumber)
		}
		if req.Guests > room.Capacity {
			return apperror.InvalidArgument("room %s accommodates at most %d guests", room.RoomNumber, room.Capacity)
		}

		overlap, err := tx.Booking.HasOverlap(ctx, room.ID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if overlap {
			return apperror.Conflict("room %s is already booked for the selected dates", room.RoomNumber)
		}

		now := s.clock.now()
		booking = &entity.Booking{
			Base:           entity.NewBase(now),
			Reference:      utils.GenerateBookingReference(now),
			UserID:         actor.UserID,
			RoomID:         room.ID,
			CheckInDate:    checkIn,
			CheckOutDate:   checkOut,
			Guests:         req.Guests,
			TotalPrice:     entity.StayPrice(room.PricePerNight, checkIn, checkOut),
			Status:         entity.BookingStatusPending,
			SpecialRequest: req.SpecialRequest,
		}
		return tx.Booking.Create(ctx, booking)
	})
	if err != nil {
		return nil, classify(s.log, "create booking", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("user_id", actor.UserID.String()),
		zap.String("room_id", room.ID.String()),
		zap.Int("nights", booking.Nights()),
		zap.String("total_price", booking.TotalPrice.String()),
	)

	s.notifier.Notify(bookingEvent(notify.KindBookingCreated, booking, room, s.clock))

	resp := response.BookingToResponse(booking, room)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, actor entity.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, actor.UserID, req.Limit(), req.Offset())
	if err != nil {
		return nil, classify(s.log, "get user bookings", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, classify(s.log, "count user bookings", err)
	}

	items, err := s.toResponses(ctx, bookings)
	if err != nil {
		return nil, err
	}

	s.log.Debug("User bookings retrieved",
		zap.String("user_id", actor.UserID.String()),
		zap.Int("count", len(bookings)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(items, req.PageOrDefault(), req.Limit(), total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, actor entity.Actor, bookingID string) (*response.BookingResponse, error) {
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
		return nil, apperror.Forbidden("you are not allowed to view this booking")
	}

	room, err := s.repo.Room.FindByID(ctx, booking.RoomID)
	if err != nil {
		return nil, classify(s.log, "get booking room", err)
	}

	resp := response.BookingToResponse(booking, room)

	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, classify(s.log, "get booking payment", err)
	}
	if payment != nil {
		paymentResp := response.PaymentToResponse(payment)
		resp.Payment = &paymentResp
	}

	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, actor entity.Actor, bookingID string) error {
	id, err := parseID("booking", bookingID)
	if err != nil {
		return err
	}

	var (
		booking *entity.Booking
		room    *entity.Room
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
			return apperror.Forbidden("you are not allowed to cancel this booking")
		}
		if booking.Status == entity.BookingStatusCancelled {
			return apperror.Conflict("booking %s is already cancelled", booking.Reference)
		}
		if !booking.Status.CanBeCancelled() {
			return apperror.Conflict("booking %s cannot be cancelled in status %s", booking.Reference, booking.Status)
		}

		if err := tx.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
			return err
		}
		booking.Status = entity.BookingStatusCancelled

		room, err = tx.Room.FindByID(ctx, booking.RoomID)
		return err
	})
	if err != nil {
		return classify(s.log, "cancel booking", err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("actor_id", actor.UserID.String()),
		zap.String("actor_role", string(actor.Role)),
	)

	s.notifier.Notify(bookingEvent(notify.KindBookingCancelled, booking, room, s.clock))
	return nil
}

func (s *bookingService) GetAllBookings(ctx context.Context, req *request.BookingFilterRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	var status *entity.BookingStatus
	if req.Status != "" {
		parsed, err := entity.ParseBookingStatus(req.Status)
		if err != nil {
			return nil, apperror.InvalidArgument("invalid booking status %q", req.Status)
		}
		status = &parsed
	}

	bookings, err := s.repo.Booking.FindAll(ctx, status, req.Limit(), req.Offset())
	if err != nil {
		return nil, classify(s.log, "get all bookings", err)
	}

	total, err := s.repo.Booking.Count(ctx, status)
	if err != nil {
		return nil, classify(s.log, "count bookings", err)
	}

	items, err := s.toResponses(ctx, bookings)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(items, req.PageOrDefault(), req.Limit(), total), nil
}

// UpdateBookingStatus moves a booking along the state machine. Check-in and
// check-out also update the room's operational status.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	id, err := parseID("booking", bookingID)
	if err != nil {
		return nil, err
	}

	target, err := entity.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, apperror.InvalidArgument("invalid booking status %q", req.Status)
	}

	var (
		booking  *entity.Booking
		room     *entity.Room
		previous entity.BookingStatus
	)
	err = s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		booking, err = tx.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			return apperror.NotFound("booking %s not found", bookingID)
		}
		if booking.Status == target {
			return apperror.Conflict("booking %s is already %s", booking.Reference, target)
		}
		if !booking.Status.CanTransitionTo(target) {
			return apperror.Conflict("booking %s cannot move from %s to %s", booking.Reference, booking.Status, target)
		}

		if err := tx.Booking.UpdateStatus(ctx, booking.ID, target); err != nil {
			return err
		}
		previous = booking.Status
		booking.Status = target
		booking.Touch(s.clock.now())

		switch target {
		case entity.BookingStatusCheckedIn:
			err = tx.Room.UpdateStatus(ctx, booking.RoomID, entity.RoomStatusBooked)
		case entity.BookingStatusCheckedOut:
			err = tx.Room.UpdateStatus(ctx, booking.RoomID, entity.RoomStatusCleaning)
		}
		if err != nil {
			return err
		}

		room, err = tx.Room.FindByID(ctx, booking.RoomID)
		return err
	})
	if err != nil {
		return nil, classify(s.log, "update booking status", err)
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(target)),
	)

	s.notifier.Notify(bookingEvent(notify.KindBookingStatusChanged, booking, room, s.clock))

	resp := response.BookingToResponse(booking, room)
	return &resp, nil
}

func (s *bookingService) GetCheckInsForToday(ctx context.Context) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindCheckInsByDate(ctx, s.clock.Today(), entity.InHouseStatuses)
	if err != nil {
		return nil, classify(s.log, "get today's check-ins", err)
	}
	return s.toResponses(ctx, bookings)
}

func (s *bookingService) GetCheckOutsForToday(ctx context.Context) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindCheckOutsByDate(ctx, s.clock.Today(), entity.InHouseStatuses)
	if err != nil {
		return nil, classify(s.log, "get today's check-outs", err)
	}
	return s.toResponses(ctx, bookings)
}

// GetActiveBookingsOn lists in-house bookings on date, defaulting to today.
func (s *bookingService) GetActiveBookingsOn(ctx context.Context, date string) ([]response.BookingResponse, error) {
	day := s.clock.Today()
	if date != "" {
		parsed, err := utils.ParseDate(date)
		if err != nil {
			return nil, apperror.InvalidArgument("invalid date %q, expected %s", date, utils.DateLayout)
		}
		day = parsed
	}

	bookings, err := s.repo.Booking.FindActiveOnDate(ctx, day)
	if err != nil {
		return nil, classify(s.log, "get active bookings", err)
	}
	return s.toResponses(ctx, bookings)
}

func (s *bookingService) toResponses(ctx context.Context, bookings []*entity.Booking) ([]response.BookingResponse, error) {
	rooms := make(map[uuid.UUID]*entity.Room)
	out := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		room, ok := rooms[booking.RoomID]
		if !ok {
			var err error
			room, err = s.repo.Room.FindByID(ctx, booking.RoomID)
			if err != nil {
				return nil, classify(s.log, "load booking room", err)
			}
			rooms[booking.RoomID] = room
		}
		out[i] = response.BookingToResponse(booking, room)
	}
	return out, nil
}

func bookingEvent(kind notify.Kind, booking *entity.Booking, room *entity.Room, clock Clock) notify.Event {
	event := notify.Event{
		Kind:       kind,
		UserID:     booking.UserID,
		BookingID:  booking.ID,
		Reference:  booking.Reference,
		CheckIn:    booking.CheckInDate,
		CheckOut:   booking.CheckOutDate,
		Status:     string(booking.Status),
		Amount:     booking.TotalPrice,
		OccurredAt: clock.now(),
	}
	if room != nil {
		event.RoomNumber = room.RoomNumber
	}
	return event
}
