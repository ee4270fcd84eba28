package response

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBusinessError_Defaults(t *testing.T) {
	err := NewBusinessError()

	assert.Equal(t, Fail, err.Code)
	assert.Equal(t, "business error", err.Msg)
	assert.Empty(t, err.Kind)
	assert.Nil(t, err.Err)
}

func TestNewBusinessError_Options(t *testing.T) {
	cause := errors.New("boom")
	err := NewBusinessError(
		WithErrorCode(Conflict),
		WithErrorMessage("duplicate"),
		WithErrorKind("DuplicateIdentity"),
		WithError(cause),
	)

	assert.Equal(t, Conflict, err.Code)
	assert.Equal(t, "duplicate", err.Msg)
	assert.Equal(t, "DuplicateIdentity", err.Kind)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "duplicate: boom", err.Error())
}

func TestBusinessError_HTTPStatus(t *testing.T) {
	tests := []struct {
		code ResponseCode
		want int
	}{
		{Fail, http.StatusInternalServerError},
		{ParseError, http.StatusBadRequest},
		{InvalidParameter, http.StatusBadRequest},
		{Unauthorized, http.StatusUnauthorized},
		{NotFound, http.StatusNotFound},
		{Conflict, http.StatusConflict},
		{TooManyRequests, http.StatusTooManyRequests},
		{Unavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		err := NewBusinessError(WithErrorCode(tt.code))
		assert.Equal(t, tt.want, err.HTTPStatus(), "code %d", tt.code)
	}
}

func TestFromBusinessError(t *testing.T) {
	resp := FromBusinessError(NewBusinessError(
		WithErrorCode(Unauthorized),
		WithErrorMessage("nope"),
		WithErrorKind("InvalidCredentials"),
	))

	assert.Equal(t, Unauthorized, resp.Code)
	assert.Equal(t, "nope", resp.Message)
	assert.Equal(t, "InvalidCredentials", resp.Error)
	assert.Nil(t, resp.Data)
}
