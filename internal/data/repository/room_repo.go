package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindByNumber(ctx context.Context, roomNumber string) (*entity.Room, error)
	FindActive(ctx context.Context) ([]*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RoomStatus) error

	// Business queries
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]*entity.Room, error)
}

const roomColumns = `id, room_number, name, room_type, description, capacity, price_per_night, status, active, created_at, updated_at`

type roomRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRoomRepository(db database.Querier, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

func scanRoom(row scanner) (*entity.Room, error) {
	var room entity.Room
	err := row.Scan(
		&room.ID,
		&room.RoomNumber,
		&room.Name,
		&room.RoomType,
		&room.Description,
		&room.Capacity,
		&room.PricePerNight,
		&room.Status,
		&room.Active,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) collect(rows pgx.Rows) ([]*entity.Room, error) {
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (` + roomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		room.ID,
		room.RoomNumber,
		room.Name,
		room.RoomType,
		room.Description,
		room.Capacity,
		room.PricePerNight,
		room.Status,
		room.Active,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("room_number", room.RoomNumber),
		)
		return fmt.Errorf("create room %s: %w", room.RoomNumber, translateError(err))
	}

	return nil
}

func (r *roomRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Room, error) {
	room, err := scanRoom(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return room, err
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	room, err := r.findOne(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to find room by ID", zap.Error(err), zap.String("room_id", id.String()))
		return nil, fmt.Errorf("find room by ID %s: %w", id.String(), err)
	}
	return room, nil
}

// FindByIDForUpdate locks the room row until the surrounding transaction ends.
// Concurrent bookings for the same room queue up behind this lock.
func (r *roomRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1 FOR UPDATE`

	room, err := r.findOne(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to lock room", zap.Error(err), zap.String("room_id", id.String()))
		return nil, fmt.Errorf("lock room %s: %w", id.String(), err)
	}
	return room, nil
}

func (r *roomRepository) FindByNumber(ctx context.Context, roomNumber string) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE room_number = $1`

	room, err := r.findOne(ctx, query, roomNumber)
	if err != nil {
		r.log.Error("Failed to find room by number", zap.Error(err), zap.String("room_number", roomNumber))
		return nil, fmt.Errorf("find room by number %s: %w", roomNumber, err)
	}
	return room, nil
}

func (r *roomRepository) FindActive(ctx context.Context) ([]*entity.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE active = TRUE
		ORDER BY room_number
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to query active rooms", zap.Error(err))
		return nil, fmt.Errorf("query active rooms: %w", err)
	}

	rooms, err := r.collect(rows)
	if err != nil {
		r.log.Error("Failed to read active rooms", zap.Error(err))
		return nil, fmt.Errorf("read active rooms: %w", err)
	}
	return rooms, nil
}

// FindAvailable returns active rooms with no live booking touching [checkIn, checkOut].
func (r *roomRepository) FindAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]*entity.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms r
		WHERE r.active = TRUE
		  AND NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.room_id = r.id
			  AND b.status <> 'cancelled'
			  AND b.check_in_date <= $2
			  AND b.check_out_date >= $1
		  )
		ORDER BY r.room_number
	`

	rows, err := r.db.Query(ctx, query, checkIn, checkOut)
	if err != nil {
		r.log.Error("Failed to query available rooms",
			zap.Error(err),
			zap.Time("check_in", checkIn),
			zap.Time("check_out", checkOut),
		)
		return nil, fmt.Errorf("query available rooms: %w", err)
	}

	rooms, err := r.collect(rows)
	if err != nil {
		r.log.Error("Failed to read available rooms", zap.Error(err))
		return nil, fmt.Errorf("read available rooms: %w", err)
	}
	return rooms, nil
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms
		SET room_number = $2, name = $3, room_type = $4, description = $5,
		    capacity = $6, price_per_night = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		room.ID,
		room.RoomNumber,
		room.Name,
		room.RoomType,
		room.Description,
		room.Capacity,
		room.PricePerNight,
		room.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update room", zap.Error(err), zap.String("room_id", room.ID.String()))
		return fmt.Errorf("update room %s: %w", room.ID.String(), translateError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %s not found", room.ID.String())
	}
	return nil
}

func (r *roomRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE rooms SET active = FALSE, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to deactivate room", zap.Error(err), zap.String("room_id", id.String()))
		return fmt.Errorf("deactivate room %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %s not found", id.String())
	}
	return nil
}

func (r *roomRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RoomStatus) error {
	query := `UPDATE rooms SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, string(status))
	if err != nil {
		r.log.Error("Failed to update room status",
			zap.Error(err),
			zap.String("room_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update room %s status: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %s not found", id.String())
	}
	return nil
}
