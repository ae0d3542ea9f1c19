package repository

import (
	"context"
	"errors"
	"fmt"

	"hotel-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Room    RoomRepository
	Booking BookingRepository
	Payment PaymentRepository
	Review  ReviewRepository

	Tx Transactor
}

// Transactor runs fn as one unit of work. The repositories handed to fn
// share the transaction; returning an error rolls everything back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx *Repository) error) error
}

func (r *Repository) WithinTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.Tx.WithinTx(ctx, fn)
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepositorySet(db, log)
	repo.Tx = &pgxTransactor{
		db:  db,
		log: log.With(zap.String("repository", "tx")),
	}
	return repo
}

func newRepositorySet(db database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Room:    NewRoomRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Payment: NewPaymentRepository(db, log),
		Review:  NewReviewRepository(db, log),
	}
}

type pgxTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgxTransactor) WithinTx(ctx context.Context, fn func(tx *Repository) error) (err error) {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		t.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				t.log.Error("Failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	txRepo := newRepositorySet(tx, t.log)
	txRepo.Tx = joinedTx{repo: txRepo}

	if err = fn(txRepo); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", translateError(err))
	}

	return nil
}

// joinedTx reuses the enclosing transaction for nested calls.
type joinedTx struct {
	repo *Repository
}

func (j joinedTx) WithinTx(ctx context.Context, fn func(tx *Repository) error) error {
	return fn(j.repo)
}
