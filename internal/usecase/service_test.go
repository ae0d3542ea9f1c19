package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/memory"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/notify"
	"hotel-reservation/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorder struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recorder) Notify(event notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) kinds() []notify.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

type fixture struct {
	store    *memory.Store
	svc      *Service
	events   *recorder
	guest    entity.Actor
	stranger entity.Actor
	admin    entity.Actor
}

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore(zap.NewNop())
	events := &recorder{}
	svc := NewServiceWithClock(store.Repository(), events, Clock{
		Now:      func() time.Time { return fixedNow },
		Location: time.UTC,
	}, zap.NewNop())

	f := &fixture{
		store:    store,
		svc:      svc,
		events:   events,
		guest:    entity.Actor{UserID: uuid.New(), Role: entity.RoleCustomer},
		stranger: entity.Actor{UserID: uuid.New(), Role: entity.RoleCustomer},
		admin:    entity.Actor{UserID: uuid.New(), Role: entity.RoleAdmin},
	}
	for _, actor := range []entity.Actor{f.guest, f.stranger, f.admin} {
		store.PutUser(entity.User{
			ExternalBase: entity.ExternalBase{ID: actor.UserID, CreatedAt: fixedNow},
			Email:        actor.UserID.String() + "@example.com",
			Name:         "Test User",
			Role:         actor.Role,
		})
	}
	return f
}

func (f *fixture) room(t *testing.T, number, price string, capacity int) string {
	t.Helper()
	resp, err := f.svc.Room.CreateRoom(context.Background(), &request.CreateRoomRequest{
		RoomNumber:    number,
		Name:          "Room " + number,
		RoomType:      string(entity.RoomTypeStandard),
		Capacity:      capacity,
		PricePerNight: decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return resp.ID
}

func (f *fixture) book(t *testing.T, actor entity.Actor, roomID, in, out string) string {
	t.Helper()
	resp, err := f.svc.Booking.CreateBooking(context.Background(), actor, &request.CreateBookingRequest{
		RoomID:       roomID,
		CheckInDate:  in,
		CheckOutDate: out,
		Guests:       1,
	})
	require.NoError(t, err)
	return resp.ID
}

func (f *fixture) setStatus(t *testing.T, bookingID string, status entity.BookingStatus) {
	t.Helper()
	_, err := f.svc.Booking.UpdateBookingStatus(context.Background(), bookingID, &request.UpdateBookingStatusRequest{Status: string(status)})
	require.NoError(t, err)
}

func assertKind(t *testing.T, kind apperror.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apperror.KindOf(err), err.Error())
}

func TestClockTodayUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	clock := Clock{
		Now:      func() time.Time { return time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC) },
		Location: tokyo,
	}

	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), clock.Today())
}

func TestClassifyMapsStorageGuards(t *testing.T) {
	log := zap.NewNop()

	assertKind(t, apperror.KindConflict, classify(log, "op", fmt.Errorf("wrapped: %w", repository.ErrBookingOverlap)))
	assertKind(t, apperror.KindConflict, classify(log, "op", fmt.Errorf("wrapped: %w", repository.ErrDuplicate)))
	assertKind(t, apperror.KindNotFound, classify(log, "op", apperror.NotFound("gone")))
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(classify(log, "op", context.DeadlineExceeded)))
}
