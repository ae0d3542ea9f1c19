package entity

import (
	"github.com/google/uuid"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User is owned by the identity component; this service only reads it.
type User struct {
	ExternalBase
	Email string   `db:"email"`
	Name  string   `db:"name"`
	Role  UserRole `db:"role"`
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	UserID uuid.UUID
	Role   UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccess reports whether the actor owns the resource or administers it.
func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	return a.IsAdmin() || a.UserID == ownerID
}
