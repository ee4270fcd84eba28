package authsdk

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"
)

const testSecret = "sdk-test-secret"

func signClaims(t *testing.T, claims *Claims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims() *Claims {
	now := time.Now()
	return &Claims{
		UserID:     7,
		NationalID: "1234567890",
		Role:       "educational_deputy",
		SessionID:  "sid-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
}

func TestParseToken(t *testing.T) {
	valid := signClaims(t, validClaims(), testSecret)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	expiredToken := signClaims(t, expired, testSecret)

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{"valid token", valid, testSecret, nil},
		{"empty token", "", testSecret, ErrNoToken},
		{"garbage", "not-a-jwt", testSecret, ErrInvalidToken},
		{"wrong secret", valid, "other-secret", ErrInvalidToken},
		{"expired", expiredToken, testSecret, ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := ParseToken(tt.token, tt.secret)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 7, user.UserID)
			assert.Equal(t, "1234567890", user.NationalID)
			assert.Equal(t, "sid-1", user.SessionID)
			assert.True(t, user.Authenticated())
			assert.Equal(t, "educational-deputy", user.DashboardSegment())
		})
	}
}

func TestParseToken_RejectsNoneAlgorithm(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims()).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractTokenFromContext(t *testing.T) {
	tests := []struct {
		name    string
		md      metadata.MD
		want    string
		wantErr bool
	}{
		{"bearer header", metadata.Pairs("authorization", "Bearer abc"), "abc", false},
		{"raw authorization", metadata.Pairs("authorization", "abc"), "abc", false},
		{"session header", metadata.Pairs(SessionTokenHeader, "opaque"), "opaque", false},
		{"no headers", metadata.MD{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := metadata.NewIncomingContext(context.Background(), tt.md)
			got, err := ExtractTokenFromContext(ctx)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoToken)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ExtractTokenFromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestGetUserFromContext(t *testing.T) {
	token := signClaims(t, validClaims(), testSecret)
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))

	user := GetUserFromContext(ctx, testSecret)
	assert.True(t, user.Authenticated())
	assert.Equal(t, "educational_deputy", user.Role)

	anonymous := GetUserFromContext(context.Background(), testSecret)
	assert.False(t, anonymous.Authenticated())
}
