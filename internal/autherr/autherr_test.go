package autherr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"madrese/auth-service/packages/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Is(t *testing.T) {
	wrapped := fmt.Errorf("verify: %w", ErrInvalidCode)
	assert.ErrorIs(t, wrapped, ErrInvalidCode)
	assert.NotErrorIs(t, wrapped, ErrExpired)

	field := InvalidProfile("email", "ایمیل نامعتبر است")
	assert.ErrorIs(t, field, ErrInvalidProfile)
	assert.Equal(t, "InvalidProfile(email)", field.Error())
}

func TestBusiness(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   response.ResponseCode
		wantKind   string
		wantStatus int
	}{
		{"credentials", ErrInvalidCredentials, response.Unauthorized, "InvalidCredentials", http.StatusUnauthorized},
		{"wrapped invalid code", fmt.Errorf("x: %w", ErrInvalidCode), response.InvalidParameter, "InvalidCode", http.StatusBadRequest},
		{"duplicate", ErrDuplicateIdentity, response.Conflict, "DuplicateIdentity", http.StatusConflict},
		{"transport", ErrTransportFailure, response.Unavailable, "TransportFailure", http.StatusServiceUnavailable},
		{"attempts", ErrTooManyAttempts, response.TooManyRequests, "TooManyAttempts", http.StatusTooManyRequests},
		{"unknown", errors.New("boom"), response.Fail, "", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bizErr := Business(tt.err)
			assert.Equal(t, tt.wantCode, bizErr.Code)
			assert.Equal(t, tt.wantKind, bizErr.Kind)
			assert.Equal(t, tt.wantStatus, bizErr.HTTPStatus())
			assert.NotEmpty(t, bizErr.Msg)
		})
	}
}

func TestBusiness_PassesThroughBusinessError(t *testing.T) {
	orig := response.NewBusinessError(response.WithErrorCode(response.ParseError))
	assert.Same(t, orig, Business(orig))
}

func TestFromKind(t *testing.T) {
	e, ok := FromKind("Expired")
	require.True(t, ok)
	assert.Same(t, ErrExpired, e)

	_, ok = FromKind("Nope")
	assert.False(t, ok)
}
