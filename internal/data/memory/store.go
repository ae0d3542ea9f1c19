// Package memory is an in-process implementation of the repository
// interfaces. Transactions hold a store-wide lock and restore a snapshot on
// failure, so every unit of work is serializable and all-or-nothing.
package memory

import (
	"context"
	"maps"
	"sync"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type state struct {
	users    map[uuid.UUID]entity.User
	rooms    map[uuid.UUID]entity.Room
	bookings map[uuid.UUID]entity.Booking
	payments map[uuid.UUID]entity.Payment
	reviews  map[uuid.UUID]entity.Review

	// insertion order, used to break created_at ties
	seq     map[uuid.UUID]int64
	nextSeq int64
}

func newState() *state {
	return &state{
		users:    make(map[uuid.UUID]entity.User),
		rooms:    make(map[uuid.UUID]entity.Room),
		bookings: make(map[uuid.UUID]entity.Booking),
		payments: make(map[uuid.UUID]entity.Payment),
		reviews:  make(map[uuid.UUID]entity.Review),
		seq:      make(map[uuid.UUID]int64),
	}
}

func (st *state) clone() *state {
	return &state{
		users:    maps.Clone(st.users),
		rooms:    maps.Clone(st.rooms),
		bookings: maps.Clone(st.bookings),
		payments: maps.Clone(st.payments),
		reviews:  maps.Clone(st.reviews),
		seq:      maps.Clone(st.seq),
		nextSeq:  st.nextSeq,
	}
}

func (st *state) track(id uuid.UUID) {
	st.nextSeq++
	st.seq[id] = st.nextSeq
}

type Store struct {
	mu  sync.Mutex
	st  *state
	log *zap.Logger
}

func NewStore(log *zap.Logger) *Store {
	return &Store{
		st:  newState(),
		log: log.With(zap.String("repository", "memory")),
	}
}

// Repository exposes the store through the repository interfaces.
func (s *Store) Repository() *repository.Repository {
	repo := s.repositorySet(false)
	repo.Tx = s
	return repo
}

func (s *Store) repositorySet(inTx bool) *repository.Repository {
	v := view{s: s, inTx: inTx}
	return &repository.Repository{
		User:    userRepo{v},
		Room:    roomRepo{v},
		Booking: bookingRepo{v},
		Payment: paymentRepo{v},
		Review:  reviewRepo{v},
	}
}

// PutUser seeds an account; users are owned by the identity component.
func (s *Store) PutUser(user entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.users[user.ID] = user
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx *repository.Repository) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	defer func() {
		if p := recover(); p != nil {
			s.st = snapshot
			panic(p)
		}
		if err != nil {
			s.st = snapshot
			s.log.Debug("Transaction rolled back", zap.Error(err))
		}
	}()

	txRepo := s.repositorySet(true)
	txRepo.Tx = joinedTx{repo: txRepo}

	return fn(txRepo)
}

type joinedTx struct {
	repo *repository.Repository
}

func (j joinedTx) WithinTx(ctx context.Context, fn func(tx *repository.Repository) error) error {
	return fn(j.repo)
}

// view runs reads and writes against the current state, taking the lock
// unless the caller already holds it through a transaction.
type view struct {
	s    *Store
	inTx bool
}

func (v view) do(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !v.inTx {
		v.s.mu.Lock()
		defer v.s.mu.Unlock()
	}
	return fn(v.s.st)
}
