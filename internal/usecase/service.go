package usecase

import (
	"errors"
	"fmt"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/notify"
	"hotel-reservation/pkg/apperror"
	"hotel-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Room    RoomService
	Booking BookingService
	Payment PaymentService
	Review  ReviewService
}

func NewService(repo *repository.Repository, notifier notify.Notifier, config *utils.Config, log *zap.Logger) (*Service, error) {
	loc, err := config.App.Location()
	if err != nil {
		return nil, fmt.Errorf("resolve timezone: %w", err)
	}
	return NewServiceWithClock(repo, notifier, SystemClock(loc), log), nil
}

func NewServiceWithClock(repo *repository.Repository, notifier notify.Notifier, clock Clock, log *zap.Logger) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{
		Room:    NewRoomService(repo, clock, log),
		Booking: NewBookingService(repo, notifier, clock, log),
		Payment: NewPaymentService(repo, notifier, clock, log),
		Review:  NewReviewService(repo, clock, log),
	}
}

// Clock supplies the current instant and the hotel's local calendar.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func SystemClock(loc *time.Location) Clock {
	return Clock{Now: time.Now, Location: loc}
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Today is the hotel's current calendar date as midnight UTC.
func (c Clock) Today() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return entity.DateOf(c.now().In(loc))
}

func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.InvalidArgument("invalid %s ID format: %s", kind, raw)
	}
	return id, nil
}

func validateRequest(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperror.Validation(errs)
	}
	return nil
}

// classify passes domain errors through, turns storage guard violations into
// Conflict and logs anything else as an infrastructure failure.
func classify(log *zap.Logger, op string, err error) error {
	if _, ok := apperror.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repository.ErrBookingOverlap):
		return apperror.Conflict("room is already booked for the selected dates").Wrap(err)
	case errors.Is(err, repository.ErrDuplicate):
		return apperror.Conflict("record already exists").Wrap(err)
	}
	log.Error("Failed to "+op, zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}
