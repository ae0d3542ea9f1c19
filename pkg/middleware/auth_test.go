package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-reservation/pkg/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func claimsFor(userID uuid.UUID, role string) Claims {
	return Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "identity",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

// echoActor writes the user id and role set by Authenticate.
func echoActor(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role, _ := utils.GetRoleFromContext(r.Context())
	w.Write([]byte(userID.String() + "|" + role))
}

func newAuthHandler() http.Handler {
	verifier := NewTokenVerifier(utils.JWTConfig{Secret: testSecret, Issuer: "identity"})
	return Authenticate(verifier, zap.NewNop())(http.HandlerFunc(echoActor))
}

func TestAuthenticateAcceptsValidToken(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, claimsFor(userID, RoleAdmin)))
	rec := httptest.NewRecorder()

	newAuthHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String()+"|admin", rec.Body.String())
}

func TestAuthenticateDefaultsRoleToCustomer(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "bearer "+signToken(t, testSecret, claimsFor(userID, "")))
	rec := httptest.NewRecorder()

	newAuthHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String()+"|customer", rec.Body.String())
}

func TestAuthenticateRejects(t *testing.T) {
	userID := uuid.New()
	expired := claimsFor(userID, RoleCustomer)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	wrongIssuer := claimsFor(userID, RoleCustomer)
	wrongIssuer.Issuer = "someone-else"
	badSubject := claimsFor(userID, RoleCustomer)
	badSubject.Subject = "not-a-uuid"

	tests := map[string]string{
		"missing header": "",
		"no scheme":      signToken(t, testSecret, claimsFor(userID, RoleCustomer)),
		"basic scheme":   "Basic dXNlcjpwYXNz",
		"wrong secret":   "Bearer " + signToken(t, "other-secret", claimsFor(userID, RoleCustomer)),
		"expired":        "Bearer " + signToken(t, testSecret, expired),
		"wrong issuer":   "Bearer " + signToken(t, testSecret, wrongIssuer),
		"bad subject":    "Bearer " + signToken(t, testSecret, badSubject),
		"unknown role":   "Bearer " + signToken(t, testSecret, claimsFor(userID, "superuser")),
	}

	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()

			newAuthHandler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAdminRequiresAdminRole(t *testing.T) {
	handler := Admin(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name string
		role string
		want int
	}{
		{"admin", RoleAdmin, http.StatusNoContent},
		{"customer", RoleCustomer, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
			req = req.WithContext(utils.SetUserContext(req.Context(), uuid.New(), tt.role))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
