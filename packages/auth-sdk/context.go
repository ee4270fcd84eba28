package authsdk

import (
	"context"
	"strings"

	"google.golang.org/grpc/metadata"
)

// SessionTokenHeader carries an opaque session token between services.
const SessionTokenHeader = "x-session-token"

// ExtractTokenFromContext 从 gRPC context 的 metadata 中提取 token
// 支持两种方式：
// 1. authorization header (Bearer token)
// 2. x-session-token header
func ExtractTokenFromContext(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", ErrNoToken
	}

	if values := md.Get("authorization"); len(values) > 0 && values[0] != "" {
		return strings.TrimPrefix(values[0], "Bearer "), nil
	}

	if values := md.Get(SessionTokenHeader); len(values) > 0 && values[0] != "" {
		return values[0], nil
	}

	return "", ErrNoToken
}

// GetUserFromContext 从 gRPC context 获取用户信息
// 如果没有 token 或解析失败，返回空的 UserContext（UserID=0）
func GetUserFromContext(ctx context.Context, secret string) *UserContext {
	token, err := ExtractTokenFromContext(ctx)
	if err != nil {
		return &UserContext{}
	}

	user, err := ParseToken(token, secret)
	if err != nil {
		return &UserContext{}
	}

	return user
}
