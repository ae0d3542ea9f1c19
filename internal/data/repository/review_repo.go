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

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)
	FindVisibleByRoomID(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountVisibleByRoomID(ctx context.Context, roomID uuid.UUID) (int64, error)
	FindVisible(ctx context.Context, limit, offset int) ([]*entity.Review, error)
	CountVisible(ctx context.Context) (int64, error)
	FindHidden(ctx context.Context) ([]*entity.Review, error)
	UpdateVisibility(ctx context.Context, id uuid.UUID, visible bool) error
	UpdateReply(ctx context.Context, id uuid.UUID, reply string, repliedAt time.Time) error

	// Business queries
	ExistsByBookingID(ctx context.Context, bookingID uuid.UUID) (bool, error)
	GetRoomReviewStats(ctx context.Context, roomID uuid.UUID) (*entity.RoomReviewStats, error)
}

const reviewColumns = `id, booking_id, user_id, room_id, rating, comment, admin_reply, admin_reply_at, visible, created_at, updated_at`

type reviewRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReviewRepository(db database.Querier, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func scanReview(row scanner) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.BookingID,
		&review.UserID,
		&review.RoomID,
		&review.Rating,
		&review.Comment,
		&review.AdminReply,
		&review.AdminReplyAt,
		&review.Visible,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.BookingID,
		review.UserID,
		review.RoomID,
		review.Rating,
		review.Comment,
		review.AdminReply,
		review.AdminReplyAt,
		review.Visible,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("booking_id", review.BookingID.String()),
			zap.String("user_id", review.UserID.String()),
		)
		return fmt.Errorf("create review for booking %s: %w", review.BookingID.String(), translateError(err))
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID", zap.Error(err), zap.String("review_id", id.String()))
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}
	return review, nil
}

func (r *reviewRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	reviews, err := r.list(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find reviews by user ID", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find reviews by user ID %s: %w", userID.String(), err)
	}
	return reviews, nil
}

func (r *reviewRepository) FindVisibleByRoomID(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE room_id = $1 AND visible = TRUE
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	reviews, err := r.list(ctx, query, roomID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find room reviews", zap.Error(err), zap.String("room_id", roomID.String()))
		return nil, fmt.Errorf("find reviews for room %s: %w", roomID.String(), err)
	}
	return reviews, nil
}

func (r *reviewRepository) CountVisibleByRoomID(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM reviews WHERE room_id = $1 AND visible = TRUE`
	if err := r.db.QueryRow(ctx, query, roomID).Scan(&count); err != nil {
		r.log.Error("Failed to count room reviews", zap.Error(err), zap.String("room_id", roomID.String()))
		return 0, fmt.Errorf("count reviews for room %s: %w", roomID.String(), err)
	}
	return count, nil
}

func (r *reviewRepository) FindVisible(ctx context.Context, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE visible = TRUE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	reviews, err := r.list(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find visible reviews", zap.Error(err))
		return nil, fmt.Errorf("find visible reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) CountVisible(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE visible = TRUE`).Scan(&count); err != nil {
		r.log.Error("Failed to count visible reviews", zap.Error(err))
		return 0, fmt.Errorf("count visible reviews: %w", err)
	}
	return count, nil
}

func (r *reviewRepository) FindHidden(ctx context.Context) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE visible = FALSE
		ORDER BY created_at DESC
	`

	reviews, err := r.list(ctx, query)
	if err != nil {
		r.log.Error("Failed to find hidden reviews", zap.Error(err))
		return nil, fmt.Errorf("find hidden reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) UpdateVisibility(ctx context.Context, id uuid.UUID, visible bool) error {
	query := `UPDATE reviews SET visible = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, visible)
	if err != nil {
		r.log.Error("Failed to update review visibility", zap.Error(err), zap.String("review_id", id.String()))
		return fmt.Errorf("update review %s visibility: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}
	return nil
}

func (r *reviewRepository) UpdateReply(ctx context.Context, id uuid.UUID, reply string, repliedAt time.Time) error {
	query := `UPDATE reviews SET admin_reply = $2, admin_reply_at = $3, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, reply, repliedAt)
	if err != nil {
		r.log.Error("Failed to update review reply", zap.Error(err), zap.String("review_id", id.String()))
		return fmt.Errorf("update review %s reply: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}
	return nil
}

func (r *reviewRepository) ExistsByBookingID(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM reviews WHERE booking_id = $1)`
	if err := r.db.QueryRow(ctx, query, bookingID).Scan(&exists); err != nil {
		r.log.Error("Failed to check review existence", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return false, fmt.Errorf("check review for booking %s: %w", bookingID.String(), err)
	}
	return exists, nil
}

func (r *reviewRepository) GetRoomReviewStats(ctx context.Context, roomID uuid.UUID) (*entity.RoomReviewStats, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0)::float8, COUNT(*)
		FROM reviews
		WHERE room_id = $1 AND visible = TRUE
	`

	var stats entity.RoomReviewStats
	if err := r.db.QueryRow(ctx, query, roomID).Scan(&stats.AverageRating, &stats.ReviewCount); err != nil {
		r.log.Error("Failed to get room review stats", zap.Error(err), zap.String("room_id", roomID.String()))
		return nil, fmt.Errorf("get review stats for room %s: %w", roomID.String(), err)
	}
	return &stats, nil
}
