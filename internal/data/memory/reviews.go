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

type reviewRepo struct{ v view }

var _ repository.ReviewRepository = reviewRepo{}

func (r reviewRepo) filter(ctx context.Context, keep func(rv *entity.Review) bool) ([]*entity.Review, error) {
	var out []*entity.Review
	err := r.v.do(ctx, func(st *state) error {
		for _, rv := range st.reviews {
			if keep(&rv) {
				out = append(out, &rv)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return st.seq[out[i].ID] > st.seq[out[j].ID]
		})
		return nil
	})
	return out, err
}

func (r reviewRepo) Create(ctx context.Context, review *entity.Review) error {
	return r.v.do(ctx, func(st *state) error {
		for _, rv := range st.reviews {
			if rv.BookingID == review.BookingID {
				return fmt.Errorf("create review for booking %s: %w", review.BookingID, repository.ErrDuplicate)
			}
		}
		st.reviews[review.ID] = *review
		st.track(review.ID)
		return nil
	})
}

func (r reviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var out *entity.Review
	err := r.v.do(ctx, func(st *state) error {
		if rv, ok := st.reviews[id]; ok {
			out = &rv
		}
		return nil
	})
	return out, err
}

func (r reviewRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	return r.filter(ctx, func(rv *entity.Review) bool { return rv.UserID == userID })
}

func (r reviewRepo) FindVisibleByRoomID(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	out, err := r.filter(ctx, func(rv *entity.Review) bool { return rv.RoomID == roomID && rv.Visible })
	return page(out, limit, offset), err
}

func (r reviewRepo) CountVisibleByRoomID(ctx context.Context, roomID uuid.UUID) (int64, error) {
	out, err := r.filter(ctx, func(rv *entity.Review) bool { return rv.RoomID == roomID && rv.Visible })
	return int64(len(out)), err
}

func (r reviewRepo) FindVisible(ctx context.Context, limit, offset int) ([]*entity.Review, error) {
	out, err := r.filter(ctx, func(rv *entity.Review) bool { return rv.Visible })
	return page(out, limit, offset), err
}

func (r reviewRepo) CountVisible(ctx context.Context) (int64, error) {
	out, err := r.filter(ctx, func(rv *entity.Review) bool { return rv.Visible })
	return int64(len(out)), err
}

func (r reviewRepo) FindHidden(ctx context.Context) ([]*entity.Review, error) {
	return r.filter(ctx, func(rv *entity.Review) bool { return !rv.Visible })
}

func (r reviewRepo) update(ctx context.Context, id uuid.UUID, apply func(rv *entity.Review)) error {
	return r.v.do(ctx, func(st *state) error {
		rv, ok := st.reviews[id]
		if !ok {
			return fmt.Errorf("review %s not found", id)
		}
		apply(&rv)
		st.reviews[id] = rv
		return nil
	})
}

func (r reviewRepo) UpdateVisibility(ctx context.Context, id uuid.UUID, visible bool) error {
	return r.update(ctx, id, func(rv *entity.Review) {
		rv.Visible = visible
		rv.UpdatedAt = time.Now()
	})
}

func (r reviewRepo) UpdateReply(ctx context.Context, id uuid.UUID, reply string, repliedAt time.Time) error {
	return r.update(ctx, id, func(rv *entity.Review) {
		rv.AdminReply = &reply
		rv.AdminReplyAt = &repliedAt
		rv.UpdatedAt = repliedAt
	})
}

func (r reviewRepo) ExistsByBookingID(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var exists bool
	err := r.v.do(ctx, func(st *state) error {
		for _, rv := range st.reviews {
			if rv.BookingID == bookingID {
				exists = true
				break
			}
		}
		return nil
	})
	return exists, err
}

func (r reviewRepo) GetRoomReviewStats(ctx context.Context, roomID uuid.UUID) (*entity.RoomReviewStats, error) {
	var stats entity.RoomReviewStats
	err := r.v.do(ctx, func(st *state) error {
		total := 0
		for _, rv := range st.reviews {
			if rv.RoomID == roomID && rv.Visible {
				total += rv.Rating
				stats.ReviewCount++
			}
		}
		if stats.ReviewCount > 0 {
			stats.AverageRating = float64(total) / float64(stats.ReviewCount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
