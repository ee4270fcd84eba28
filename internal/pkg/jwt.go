package pkg

import (
	"errors"
	"strconv"
	"time"

	authsdk "madrese/auth-service/packages/auth-sdk"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptySecret = errors.New("jwt secret is empty")

// JWTConfig 访问令牌配置
type JWTConfig struct {
	Secret     string        `koanf:"secret"`
	Issuer     string        `koanf:"issuer"`
	ExpireTime time.Duration `koanf:"expire_time"`
}

// TokenIssuer signs the short-lived access tokens handed to downstream
// services. Their format is owned by auth-sdk.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(cfg JWTConfig) (*TokenIssuer, error) {
	if cfg.Secret == "" {
		return nil, ErrEmptySecret
	}
	if cfg.ExpireTime <= 0 {
		cfg.ExpireTime = 15 * time.Minute
	}
	return &TokenIssuer{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.ExpireTime,
		now:    time.Now,
	}, nil
}

// AccessTokenSubject is the user part of an access token.
type AccessTokenSubject struct {
	UserID     int
	NationalID string
	Role       string
	SessionID  string
}

// GenerateAccessToken 生成访问令牌（短期有效，用于 API 访问）
func (i *TokenIssuer) GenerateAccessToken(sub AccessTokenSubject) (string, error) {
	now := i.now()

	claims := &authsdk.Claims{
		UserID:     sub.UserID,
		NationalID: sub.NationalID,
		Role:       sub.Role,
		SessionID:  sub.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   strconv.Itoa(sub.UserID),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ParseAccessToken 解析并验证访问令牌
func (i *TokenIssuer) ParseAccessToken(tokenString string) (*authsdk.Claims, error) {
	return authsdk.ParseClaims(tokenString, string(i.secret))
}
