package middleware

import (
	"context"
	"errors"
	"strings"

	"madrese/auth-service/internal/autherr"
	"madrese/auth-service/internal/dto"
	"madrese/auth-service/internal/model/user"
	"madrese/auth-service/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey = "session"
	userKey    = "user"
)

// SessionLookup finds a session by opaque token or by access token.
type SessionLookup interface {
	Current(ctx context.Context, token string) (*session.Session, error)
	ParseAccessToken(ctx context.Context, token string) (*session.Session, error)
}

// SessionResolver is the part of the session manager the middleware uses.
type SessionResolver interface {
	SessionLookup
	User(ctx context.Context, s *session.Session) (*user.User, error)
}

// SessionFromRequest 优先从 cookie 中获取会话令牌，其次是 Authorization: Bearer <access token>。
// A cookie whose session is gone falls through to the bearer token.
func SessionFromRequest(c *gin.Context, sessions SessionLookup, cookies *Cookies) (*session.Session, error) {
	ctx := c.Request.Context()

	if token := cookies.SessionToken(c); token != "" {
		s, err := sessions.Current(ctx, token)
		if !errors.Is(err, session.ErrNoSession) {
			return s, err
		}
	}

	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return sessions.ParseAccessToken(ctx, strings.TrimPrefix(authHeader, "Bearer "))
	}
	return nil, session.ErrNoSession
}

func resolve(c *gin.Context, sessions SessionResolver, cookies *Cookies) (*session.Session, *user.User, error) {
	s, err := SessionFromRequest(c, sessions, cookies)
	if err != nil {
		return nil, nil, err
	}

	u, err := sessions.User(c.Request.Context(), s)
	if err != nil {
		return nil, nil, err
	}
	return s, u, nil
}

// SessionAuth 会话认证中间件（必需认证）
func SessionAuth(sessions SessionResolver, cookies *Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, u, err := resolve(c, sessions, cookies)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				err = autherr.ErrNotAuthenticated
			}
			dto.FailResponse(c, err)
			c.Abort()
			return
		}

		// 将会话和用户存入上下文
		c.Set(sessionKey, s)
		c.Set(userKey, u)
		c.Next()
	}
}

// CurrentSession returns the session SessionAuth stored on c.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}

func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok
}
