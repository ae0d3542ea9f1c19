package utils

import (
	"context"

	"github.com/google/uuid"
)

type identityKey struct{}

// Identity is the verified caller placed on the request context by the auth middleware.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

func SetUserContext(ctx context.Context, userID uuid.UUID, role string) context.Context {
	return context.WithValue(ctx, identityKey{}, Identity{UserID: userID, Role: role})
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || identity.UserID == uuid.Nil {
		return Identity{}, false
	}
	return identity, true
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	identity, ok := IdentityFromContext(ctx)
	return identity.UserID, ok
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	identity, ok := IdentityFromContext(ctx)
	if !ok || identity.Role == "" {
		return "", false
	}
	return identity.Role, true
}
