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

type roomRepo struct{ v view }

var _ repository.RoomRepository = roomRepo{}

func sortRooms(rooms []*entity.Room) []*entity.Room {
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomNumber < rooms[j].RoomNumber })
	return rooms
}

func numberTaken(st *state, number string, except uuid.UUID) bool {
	for id, room := range st.rooms {
		if id != except && room.RoomNumber == number {
			return true
		}
	}
	return false
}

func (r roomRepo) Create(ctx context.Context, room *entity.Room) error {
	return r.v.do(ctx, func(st *state) error {
		if numberTaken(st, room.RoomNumber, room.ID) {
			return fmt.Errorf("create room %s: %w", room.RoomNumber, repository.ErrDuplicate)
		}
		st.rooms[room.ID] = *room
		st.track(room.ID)
		return nil
	})
}

func (r roomRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	var out *entity.Room
	err := r.v.do(ctx, func(st *state) error {
		if room, ok := st.rooms[id]; ok {
			out = &room
		}
		return nil
	})
	return out, err
}

// FindByIDForUpdate needs no extra locking: transactions already own the store.
func (r roomRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return r.FindByID(ctx, id)
}

func (r roomRepo) FindByNumber(ctx context.Context, roomNumber string) (*entity.Room, error) {
	var out *entity.Room
	err := r.v.do(ctx, func(st *state) error {
		for _, room := range st.rooms {
			if room.RoomNumber == roomNumber {
				out = &room
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r roomRepo) FindActive(ctx context.Context) ([]*entity.Room, error) {
	var out []*entity.Room
	err := r.v.do(ctx, func(st *state) error {
		for _, room := range st.rooms {
			if room.Active {
				out = append(out, &room)
			}
		}
		return nil
	})
	return sortRooms(out), err
}

func (r roomRepo) FindAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]*entity.Room, error) {
	var out []*entity.Room
	err := r.v.do(ctx, func(st *state) error {
		for _, room := range st.rooms {
			if room.Active && !overlapping(st, room.ID, checkIn, checkOut, uuid.Nil) {
				out = append(out, &room)
			}
		}
		return nil
	})
	return sortRooms(out), err
}

func (r roomRepo) Update(ctx context.Context, room *entity.Room) error {
	return r.v.do(ctx, func(st *state) error {
		current, ok := st.rooms[room.ID]
		if !ok {
			return fmt.Errorf("room %s not found", room.ID)
		}
		if numberTaken(st, room.RoomNumber, room.ID) {
			return fmt.Errorf("update room %s: %w", room.ID, repository.ErrDuplicate)
		}
		current.RoomNumber = room.RoomNumber
		current.Name = room.Name
		current.RoomType = room.RoomType
		current.Description = room.Description
		current.Capacity = room.Capacity
		current.PricePerNight = room.PricePerNight
		current.UpdatedAt = room.UpdatedAt
		st.rooms[room.ID] = current
		return nil
	})
}

func (r roomRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.v.do(ctx, func(st *state) error {
		room, ok := st.rooms[id]
		if !ok {
			return fmt.Errorf("room %s not found", id)
		}
		room.Active = false
		room.UpdatedAt = time.Now()
		st.rooms[id] = room
		return nil
	})
}

func (r roomRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RoomStatus) error {
	return r.v.do(ctx, func(st *state) error {
		room, ok := st.rooms[id]
		if !ok {
			return fmt.Errorf("room %s not found", id)
		}
		room.Status = status
		room.UpdatedAt = time.Now()
		st.rooms[id] = room
		return nil
	})
}
