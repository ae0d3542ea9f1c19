package memory

import (
	"context"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"

	"github.com/google/uuid"
)

type userRepo struct{ v view }

var _ repository.UserRepository = userRepo{}

func (r userRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var out *entity.User
	err := r.v.do(ctx, func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}
