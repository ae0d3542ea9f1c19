package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWrappedError(t *testing.T) {
	err := fmt.Errorf("create booking: %w", Conflict("room %s is already booked", "101"))

	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "create booking: room 101 is already booked", err.Error())
}

func TestKindOfPlainErrorIsInternal(t *testing.T) {
	err := errors.New("connection refused")

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, KindOf(err).HTTPStatus())
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:        http.StatusNotFound,
		KindConflict:        http.StatusConflict,
		KindForbidden:       http.StatusForbidden,
		KindInvalidArgument: http.StatusBadRequest,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.HTTPStatus(), kind.String())
	}
}

func TestValidationCarriesFields(t *testing.T) {
	err := Validation(map[string]string{"rating": "rating must be at least 1"})

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, KindInvalidArgument, appErr.Kind)
	assert.Equal(t, "rating must be at least 1", appErr.Fields["rating"])
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Conflict("payment already exists").Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "payment already exists: duplicate key", err.Error())
}
