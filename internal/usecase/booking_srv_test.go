package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/notify"
	"hotel-reservation/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingComputesPrice(t *testing.T) {
	f := newFixture(t)
	roomID := f.room(t, "101", "100.00", 2)

	resp, err := f.svc.Booking.CreateBooking(context.Background(), f.guest, &request.CreateBookingRequest{
		RoomID:       roomID,
		CheckInDate:  "2024-07-10",
		CheckOutDate: "2024-07-13",
		Guests:       2,
	})
	require.NoError(t, err)

	assert.Equal(t, "300", resp.TotalPrice.String())
	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, string(entity.BookingStatusPending), resp.Status)
	assert.Equal(t, f.guest.UserID.String(), resp.UserID)
	assert.Equal(t, "101", resp.RoomNumber)
	assert.True(t, strings.HasPrefix(resp.Reference, "BK-20240601-"), resp.Reference)
	assert.Equal(t, []notify.Kind{notify.KindBookingCreated}, f.events.kinds())
}

func TestCreateBookingRejectsInvalidDates(t *testing.T) {
	f := newFixture(t)
	roomID := f.room(t, "101", "100.00", 2)

	cases := map[string][2]string{
		"same day":      {"2024-07-10", "2024-07-10"},
		"reversed":      {"2024-07-12", "2024-07-10"},
		"not a date":    {"10/07/2024", "2024-07-12"},
		"missing dates": {"", ""},
	}
	for name, dates := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Booking.CreateBooking(context.Background(), f.guest, &request.CreateBookingRequest{
				RoomID:       roomID,
				CheckInDate:  dates[0],
				CheckOutDate: dates[1],
				Guests:       1,
			})
			assertKind(t, apperror.KindInvalidArgument, err)
		})
	}
	assert.Empty(t, f.events.kinds())
}

func TestCreateBookingRoomPreconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	roomID := f.room(t, "101", "100.00", 2)

	_, err := f.svc.Booking.CreateBooking(ctx, f.guest, &request.CreateBookingRequest{
		RoomID: uuid.NewString(), CheckInDate: "2024-07-10", CheckOutDate: "2024-07-12", Guests: 1,
	})
	assertKind(t, apperror.KindNotFound, err)

	_, err = f.svc.Booking.CreateBooking(ctx, f.guest, &request.CreateBookingRequest{
		RoomID: roomID, CheckInDate: "2024-07-10", CheckOutDate: "2024-07-12", Guests: 3,
	})
	assertKind(t, apperror.KindInvalidArgument, err)

	require.NoError(t, f.svc.Room.DeactivateRoom(ctx, roomID))
	_, err = f.svc.Booking.CreateBooking(ctx, f.guest, &request.CreateBookingRequest{
		RoomID: roomID, CheckInDate: "2024-07-10", CheckOutDate: "2024-07-12", Guests: 1,
	})
	assertKind(t, apperror.KindConflict, err)
}

func TestCreateBookingOverlapIsInclusive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	roomID := f.room(t, "101", "80.00", 2)
	f.book(t, f.guest, roomID, "2024-06-01", "2024-06-04")

	overlapping := [][2]string{
		{"2024-06-04", "2024-06-06"}, // check-in on the existing check-out day
		{"2024-05-28", "2024-06-01"}, // check-out on the existing check-in day
		{"2024-06-02", "2024-06-03"},
		{"2024-05-30", "2024-06-10"},
	}
	for _, dates := range overlapping {
		_, err := f.svc.Booking.CreateBooking(ctx, f.stranger, &request.CreateBookingRequest{
			RoomID: roomID, CheckInDate: dates[0], CheckOutDate: dates[1], Guests: 1,
		})
		assertKind(t, apperror.KindConflict, err)
	}

	f.book(t, f.stranger, roomID, "2024-06-05", "2024-06-07")
}

func TestCancelledBookingReleasesDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	roomID := f.room(t, "101", "80.00", 2)
	bookingID := f.book(t, f.guest, roomID, "2024-06-01", "2024-06-04")

	require.NoError(t, f.svc.Booking.CancelBooking(ctx, f.guest, bookingID))

	f.book(t, f.stranger, roomID, "2024-06-02", "2024-06-03")
}

func TestConcurrentOverlappingBookingsAdmitOne(t *testing.T) {
	f := newFixture(t)
	roomID := f.room(t, "101", "80.00", 2)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			actor := entity.Actor{UserID: uuid.New(), Role: entity.RoleCustomer}
			_, err := f.svc.Booking.CreateBooking(context.Background(), actor, &request.CreateBookingRequest{
				RoomID: roomID, CheckInDate: "2024-08-01", CheckOutDate: "2024-08-05", Guests: 1,
			})

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if apperror.IsConflict(err) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
}

func TestCancelBookingRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	roomID := f.room(t, "101", "80.00", 2)
	bookingID := f.book(t, f.guest, roomID, "2024-06-10", "2024-06-12")

	assertKind(t, apperror.KindForbidden, f.svc.Booking.CancelBooking(ctx, f.stranger, bookingID))
	assertKind(t, apperror.KindNotFound, f.svc.Booking.CancelBooking(ctx, f.guest, uuid.NewString()))
	assertKind(t, apperror.KindInvalidArgument, f.svc.Booking.CancelBooking(ctx, f.guest, "not-a-uuid"))

	require.NoError(t, f.svc.Booking.CancelBooking(ctx, f.guest, bookingID))
	assertKind(t, apperror.KindConflict, f.svc.Booking.CancelBooking(ctx, f.guest, bookingID))

	got, err := f.svc.Booking.GetBookingByID(ctx, f.guest, bookingID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusCancelled), got.Status)
	assert.Contains(t, f.events.kinds(), notify.KindBookingCancelled)
}

func TestAdminCanCancelConfirmedBooking(t *testing.T) {
	f := newFixture(t)
	roomID := f.room(t, "101", "80.00", 2)
	bookingID := f.book(t, f.guest, roomID, "2024-06-10", "2024-06-12")
	f.setStatus(t, bookingID, entity.BookingStatusConfirmed)

	require.NoError(t, f.svc.Booking.CancelBooking(context.Background(), f.admin, bookingID))
}

func TestCancelAfterCheckOutFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	roomID := f.room(t, "101", "80.00", 2)
	bookingID := f.book(t, f.guest, roomID, "2024-06-01", "2024-06-02")
	f.setStatus(t, bookingID, entity.BookingStatusConfirmed)
	f.setStatus(t, bookingID, entity.BookingStatusCheckedIn)

	assertKind(t, apperror.KindConflict, f.svc.Booking.CancelBooking(ctx, f.guest, bookingID))

	f.setStatus(t, bookingID, entity.BookingStatusCheckedOut)
	assertKind(t, apperror.KindConflict, f.svc.Booking.CancelBooking(ctx, f.admin, bookingID))
}

func TestUpdateBookingStatusFollowsStateMachine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	roomID := f.room(t, "101", "80.00", 2)
	bookingID := f.book(t, f.guest, roomID, "2024-06-01", "2024-06-03")

	update := func(status string) error {
		_, err := f.svc.Booking.UpdateBookingStatus(ctx, bookingID, &request.UpdateBookingStatusRequest{Status: status})
		return err
	}

	assertKind(t, apperror.KindConflict, update("checked_in"))
	assertKind(t, apperror.KindConflict, update("pending"))
	assertKind(t, apperror.KindInvalidArgument, update("archived"))
	assertKind(t, apperror.KindInvalidArgument, update(""))

	require.NoError(t, update("confirmed"))
	require.NoError(t, update("checked_in"))

	room, err := f.svc.Room.GetRoom(ctx, roomID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RoomStatusBooked), room.Status)

	// the simplified status set names check-out "completed"
	require.NoError(t, update("completed"))

	room, err = f.svc.Room.GetRoom(ctx, roomID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RoomStatusCleaning), room.Status)

	assertKind(t, apperror.KindConflict, update("cancelled"))
	assert.Contains(t, f.events.kinds(), notify.KindBookingStatusChanged)
}

func TestTodayListsUseInHouseStatuses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	roomA := f.room(t, "101", "80.00", 2)
	roomB := f.room(t, "102", "80.00", 2)
	roomC := f.room(t, "103", "80.00", 2)

	arriving := f.book(t, f.guest, roomA, "2024-06-01", "2024-06-03")
	f.setStatus(t, arriving, entity.BookingStatusConfirmed)

	leaving := f.book(t, f.guest, roomB, "2024-05-28", "2024-06-01")
	f.setStatus(t, leaving, entity.BookingStatusConfirmed)
	f.setStatus(t, leaving, entity.BookingStatusCheckedIn)

	// pending bookings are not expected at the desk
	f.book(t, f.stranger, roomC, "2024-06-01", "2024-06-02")

	checkIns, err := f.svc.Booking.GetCheckInsForToday(ctx)
	require.NoError(t, err)
	require.Len(t, checkIns, 1)
	assert.Equal(t, arriving, checkIns[0].ID)

	checkOuts, err := f.svc.Booking.GetCheckOutsForToday(ctx)
	require.NoError(t, err)
	require.Len(t, checkOuts, 1)
	assert.Equal(t, leaving, checkOuts[0].ID)

	active, err := f.svc.Booking.GetActiveBookingsOn(ctx, "")
	require.NoError(t, err)
	assert.Len(t, active, 2)

	active, err = f.svc.Booking.GetActiveBookingsOn(ctx, "2024-06-03")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, arriving, active[0].ID)

	_, err = f.svc.Booking.GetActiveBookingsOn(ctx, "June 3")
	assertKind(t, apperror.KindInvalidArgument, err)
}

func TestBookingQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	roomID := f.room(t, "101", "80.00", 2)

	first := f.book(t, f.guest, roomID, "2024-06-01", "2024-06-02")
	second := f.book(t, f.guest, roomID, "2024-06-10", "2024-06-12")
	third := f.book(t, f.guest, roomID, "2024-06-20", "2024-06-22")
	other := f.book(t, f.stranger, roomID, "2024-07-01", "2024-07-02")
	f.setStatus(t, other, entity.BookingStatusConfirmed)

	page, err := f.svc.Booking.GetUserBookings(ctx, f.guest, &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	require.Len(t, page.Data, 2)
	assert.Equal(t, third, page.Data[0].ID)
	assert.Equal(t, second, page.Data[1].ID)

	page, err = f.svc.Booking.GetUserBookings(ctx, f.guest, &request.PaginatedRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, first, page.Data[0].ID)

	_, err = f.svc.Booking.GetBookingByID(ctx, f.stranger, first)
	assertKind(t, apperror.KindForbidden, err)

	got, err := f.svc.Booking.GetBookingByID(ctx, f.admin, first)
	require.NoError(t, err)
	assert.Nil(t, got.Payment)

	all, err := f.svc.Booking.GetAllBookings(ctx, &request.BookingFilterRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
		Status:           "confirmed",
	})
	require.NoError(t, err)
	require.Len(t, all.Data, 1)
	assert.Equal(t, other, all.Data[0].ID)

	all, err = f.svc.Booking.GetAllBookings(ctx, &request.BookingFilterRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.Pagination.Total)

	_, err = f.svc.Booking.GetAllBookings(ctx, &request.BookingFilterRequest{Status: "unknown"})
	assertKind(t, apperror.KindInvalidArgument, err)
}
