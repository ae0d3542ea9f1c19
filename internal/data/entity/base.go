package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is embedded by every record this service writes.
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewBase assigns a fresh id and stamps both timestamps with now.
func NewBase(now time.Time) Base {
	return Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = now
}

// ExternalBase is embedded by records owned by another component, which
// carry no update timestamp here.
type ExternalBase struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
