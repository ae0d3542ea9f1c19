package usecase

import (
	"context"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/dto/response"
	"hotel-reservation/pkg/apperror"

	"go.uber.org/zap"
)

type ReviewService interface {
	// Public endpoints
	GetRoomReviews(ctx context.Context, roomID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetRoomReviewStats(ctx context.Context, roomID string) (*response.RoomReviewStats, error)
	GetVisibleReviews(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetReview(ctx context.Context, reviewID string) (*response.ReviewResponse, error)

	// Guest endpoints
	CreateReview(ctx context.Context, actor entity.Actor, bookingID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetUserReviews(ctx context.Context, actor entity.Actor) ([]response.ReviewResponse, error)

	// Admin endpoints
	GetHiddenReviews(ctx context.Context) ([]response.ReviewResponse, error)
	UpdateVisibility(ctx context.Context, reviewID string, req *request.UpdateReviewVisibilityRequest) (*response.ReviewResponse, error)
	AddAdminReply(ctx context.Context, reviewID string, req *request.AdminReplyRequest) (*response.ReviewResponse, error)
}

type reviewService struct {
	repo  *repository.Repository
	clock Clock
	log   *zap.Logger
}

func NewReviewService(repo *repository.Repository, clock Clock, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "review")),
	}
}

// CreateReview accepts one review per checked-out booking, from its owner only.
func (s *reviewService) CreateReview(ctx context.Context, actor entity.Actor, bookingID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Create review validation failed", zap.Error(err))
		return nil, err
	}

	id, err := parseID("booking", bookingID)
	if err != nil {
		return nil, err
	}

	var review *entity.Review
	err = s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		booking, err := tx.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			return apperror.NotFound("booking %s not found", bookingID)
		}
		if booking.UserID != actor.UserID {
			return apperror.Forbidden("only the guest who made the booking can review it")
		}
		if !booking.Status.IsCompleted() {
			return apperror.Conflict("booking %s must be checked out before it can be reviewed", booking.Reference)
		}

		exists, err := tx.Review.ExistsByBookingID(ctx, booking.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperror.Conflict("booking %s has already been reviewed", booking.Reference)
		}

		now := s.clock.now()
		review = &entity.Review{
			Base:      entity.NewBase(now),
			BookingID: booking.ID,
			UserID:    actor.UserID,
			RoomID:    booking.RoomID,
			Rating:    req.Rating,
			Comment:   req.Comment,
			Visible:   true,
		}
		return tx.Review.Create(ctx, review)
	})
	if err != nil {
		return nil, classify(s.log, "create review", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("booking_id", review.BookingID.String()),
		zap.Int("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetRoomReviews(ctx context.Context, roomID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindVisibleByRoomID(ctx, room.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, classify(s.log, "get room reviews", err)
	}

	total, err := s.repo.Review.CountVisibleByRoomID(ctx, room.ID)
	if err != nil {
		return nil, classify(s.log, "count room reviews", err)
	}

	return response.NewPaginatedResponse(response.ReviewsToResponse(reviews), req.PageOrDefault(), req.Limit(), total), nil
}

func (s *reviewService) GetRoomReviewStats(ctx context.Context, roomID string) (*response.RoomReviewStats, error) {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.Review.GetRoomReviewStats(ctx, room.ID)
	if err != nil {
		return nil, classify(s.log, "get room review stats", err)
	}

	return &response.RoomReviewStats{
		AverageRating: stats.AverageRating,
		ReviewCount:   stats.ReviewCount,
	}, nil
}

func (s *reviewService) GetVisibleReviews(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	reviews, err := s.repo.Review.FindVisible(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, classify(s.log, "get reviews", err)
	}

	total, err := s.repo.Review.CountVisible(ctx)
	if err != nil {
		return nil, classify(s.log, "count reviews", err)
	}

	return response.NewPaginatedResponse(response.ReviewsToResponse(reviews), req.PageOrDefault(), req.Limit(), total), nil
}

// GetReview hides reviews an administrator has made invisible.
func (s *reviewService) GetReview(ctx context.Context, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, s.repo, reviewID)
	if err != nil {
		return nil, err
	}
	if !review.Visible {
		return nil, apperror.NotFound("review %s not found", reviewID)
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, actor entity.Actor) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, classify(s.log, "get user reviews", err)
	}
	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) GetHiddenReviews(ctx context.Context) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindHidden(ctx)
	if err != nil {
		return nil, classify(s.log, "get hidden reviews", err)
	}
	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) UpdateVisibility(ctx context.Context, reviewID string, req *request.UpdateReviewVisibilityRequest) (*response.ReviewResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var review *entity.Review
	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		var err error
		review, err = s.findReview(ctx, tx, reviewID)
		if err != nil {
			return err
		}
		if err := tx.Review.UpdateVisibility(ctx, review.ID, *req.Visible); err != nil {
			return err
		}
		review.Visible = *req.Visible
		return nil
	})
	if err != nil {
		return nil, classify(s.log, "update review visibility", err)
	}

	s.log.Info("Review visibility updated",
		zap.String("review_id", review.ID.String()),
		zap.Bool("visible", review.Visible),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) AddAdminReply(ctx context.Context, reviewID string, req *request.AdminReplyRequest) (*response.ReviewResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var review *entity.Review
	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		var err error
		review, err = s.findReview(ctx, tx, reviewID)
		if err != nil {
			return err
		}

		now := s.clock.now()
		if err := tx.Review.UpdateReply(ctx, review.ID, req.Reply, now); err != nil {
			return err
		}
		review.AdminReply = &req.Reply
		review.AdminReplyAt = &now
		return nil
	})
	if err != nil {
		return nil, classify(s.log, "add admin reply", err)
	}

	s.log.Info("Admin reply added", zap.String("review_id", review.ID.String()))

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) findReview(ctx context.Context, repo *repository.Repository, reviewID string) (*entity.Review, error) {
	id, err := parseID("review", reviewID)
	if err != nil {
		return nil, err
	}

	review, err := repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, classify(s.log, "find review", err)
	}
	if review == nil {
		return nil, apperror.NotFound("review %s not found", reviewID)
	}
	return review, nil
}

func (s *reviewService) findRoom(ctx context.Context, roomID string) (*entity.Room, error) {
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
