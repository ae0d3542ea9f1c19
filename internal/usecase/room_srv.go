package usecase

import (
	"context"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/dto/response"
	"hotel-reservation/pkg/apperror"
	"hotel-reservation/pkg/utils"

	"go.uber.org/zap"
)

type RoomService interface {
	// Public endpoints
	ListRooms(ctx context.Context, req *request.AvailabilityRequest) ([]response.RoomResponse, error)
	GetRoom(ctx context.Context, roomID string) (*response.RoomResponse, error)

	// Admin endpoints
	CreateRoom(ctx context.Context, req *request.CreateRoomRequest) (*response.RoomResponse, error)
	UpdateRoom(ctx context.Context, roomID string, req *request.UpdateRoomRequest) (*response.RoomResponse, error)
	DeactivateRoom(ctx context.Context, roomID string) error
	UpdateRoomStatus(ctx context.Context, roomID string, req *request.UpdateRoomStatusRequest) (*response.RoomResponse, error)
}

type roomService struct {
	repo  *repository.Repository
	clock Clock
	log   *zap.Logger
}

func NewRoomService(repo *repository.Repository, clock Clock, log *zap.Logger) RoomService {
	return &roomService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "room")),
	}
}

// ListRooms answers the availability query. Without dates it returns every
// active room regardless of bookings.
func (s *roomService) ListRooms(ctx context.Context, req *request.AvailabilityRequest) ([]response.RoomResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if req.CheckIn == "" && req.CheckOut == "" {
		rooms, err := s.repo.Room.FindActive(ctx)
		if err != nil {
			return nil, classify(s.log, "list active rooms", err)
		}
		return response.RoomsToResponse(rooms), nil
	}

	if req.CheckIn == "" || req.CheckOut == "" {
		return nil, apperror.InvalidArgument("check_in and check_out must be supplied together")
	}

	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		return nil, apperror.InvalidArgument("invalid check-in date %q", req.CheckIn)
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		return nil, apperror.InvalidArgument("invalid check-out date %q", req.CheckOut)
	}
	if !checkIn.Before(checkOut) {
		return nil, apperror.InvalidArgument("check-out date must be after check-in date")
	}

	rooms, err := s.repo.Room.FindAvailable(ctx, checkIn, checkOut)
	if err != nil {
		return nil, classify(s.log, "list available rooms", err)
	}

	s.log.Debug("Available rooms retrieved",
		zap.String("check_in", req.CheckIn),
		zap.String("check_out", req.CheckOut),
		zap.Int("count", len(rooms)),
	)
	return response.RoomsToResponse(rooms), nil
}

func (s *roomService) GetRoom(ctx context.Context, roomID string) (*response.RoomResponse, error) {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) CreateRoom(ctx context.Context, req *request.CreateRoomRequest) (*response.RoomResponse, error) {
	if err := s.validateRoom(req); err != nil {
		s.log.Warn("Create room validation failed", zap.Error(err))
		return nil, err
	}

	now := s.clock.now()
	room := &entity.Room{
		Base:          entity.NewBase(now),
		RoomNumber:    req.RoomNumber,
		Name:          req.Name,
		RoomType:      entity.RoomType(req.RoomType),
		Description:   req.Description,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		Status:        entity.RoomStatusAvailable,
		Active:        true,
	}

	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		existing, err := tx.Room.FindByNumber(ctx, req.RoomNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.Conflict("room number %s already exists", req.RoomNumber)
		}
		return tx.Room.Create(ctx, room)
	})
	if err != nil {
		return nil, classify(s.log, "create room", err)
	}

	s.log.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("room_number", room.RoomNumber),
	)

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, roomID string, req *request.UpdateRoomRequest) (*response.RoomResponse, error) {
	if err := s.validateRoom(req); err != nil {
		return nil, err
	}

	id, err := parseID("room", roomID)
	if err != nil {
		return nil, err
	}

	var room *entity.Room
	err = s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		room, err = tx.Room.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if room == nil {
			return apperror.NotFound("room %s not found", roomID)
		}

		if req.RoomNumber != room.RoomNumber {
			existing, err := tx.Room.FindByNumber(ctx, req.RoomNumber)
			if err != nil {
				return err
			}
			if existing != nil {
				return apperror.Conflict("room number %s already exists", req.RoomNumber)
			}
		}

		room.RoomNumber = req.RoomNumber
		room.Name = req.Name
		room.RoomType = entity.RoomType(req.RoomType)
		room.Description = req.Description
		room.Capacity = req.Capacity
		room.PricePerNight = req.PricePerNight
		room.Touch(s.clock.now())

		return tx.Room.Update(ctx, room)
	})
	if err != nil {
		return nil, classify(s.log, "update room", err)
	}

	s.log.Info("Room updated", zap.String("room_id", room.ID.String()))

	resp := response.RoomToResponse(room)
	return &resp, nil
}

// DeactivateRoom is a soft delete; existing bookings keep their room.
func (s *roomService) DeactivateRoom(ctx context.Context, roomID string) error {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return err
	}

	if err := s.repo.Room.Deactivate(ctx, room.ID); err != nil {
		return classify(s.log, "deactivate room", err)
	}

	s.log.Info("Room deactivated", zap.String("room_id", room.ID.String()))
	return nil
}

func (s *roomService) UpdateRoomStatus(ctx context.Context, roomID string, req *request.UpdateRoomStatusRequest) (*response.RoomResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	status := entity.RoomStatus(req.Status)
	if err := s.repo.Room.UpdateStatus(ctx, room.ID, status); err != nil {
		return nil, classify(s.log, "update room status", err)
	}
	room.Status = status
	room.Touch(s.clock.now())

	s.log.Info("Room status updated",
		zap.String("room_id", room.ID.String()),
		zap.String("status", req.Status),
	)

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) findRoom(ctx context.Context, roomID string) (*entity.Room, error) {
	id, err := parseID("room", roomID)
	if err != nil {
		return nil, err
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, classify(s.log, "find room", err)
	}
	if room == nil {
		return nil, apperror.NotFound("room %s not found", roomID)
	}
	return room, nil
}

func (s *roomService) validateRoom(req *request.CreateRoomRequest) error {
	errs := utils.ValidateStruct(req)
	if !req.PricePerNight.IsPositive() {
		if errs == nil {
			errs = make(map[string]string)
		}
		errs["price_per_night"] = "Must be greater than 0"
	}
	if len(errs) > 0 {
		return apperror.Validation(errs)
	}
	return nil
}
