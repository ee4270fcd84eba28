package authsdk

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrNoToken      = errors.New("no token provided")
)

// Claims JWT 自定义声明
type Claims struct {
	UserID     int    `json:"user_id"`
	NationalID string `json:"national_id"`
	Role       string `json:"role"`
	SessionID  string `json:"sid"`
	jwt.RegisteredClaims
}

// UserContext is what a downstream dashboard needs to gate rendering.
type UserContext struct {
	UserID     int
	NationalID string
	Role       string
	SessionID  string
}

// Authenticated reports whether the context carries a real user.
func (u *UserContext) Authenticated() bool {
	return u != nil && u.UserID > 0
}

// DashboardSegment is the role tag as it appears in route paths.
func (u *UserContext) DashboardSegment() string {
	return strings.ReplaceAll(u.Role, "_", "-")
}

// ParseClaims 解析并验证 JWT token
func ParseClaims(tokenString, secret string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// ParseToken validates tokenString and flattens its claims.
func ParseToken(tokenString, secret string) (*UserContext, error) {
	claims, err := ParseClaims(tokenString, secret)
	if err != nil {
		return nil, err
	}
	return &UserContext{
		UserID:     claims.UserID,
		NationalID: claims.NationalID,
		Role:       claims.Role,
		SessionID:  claims.SessionID,
	}, nil
}
