package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"madrese/auth-service/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	byToken  map[string]*session.Session
	byAccess map[string]*session.Session
	err      error
}

func (f *fakeLookup) Current(_ context.Context, token string) (*session.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.byToken[token]; ok {
		return s, nil
	}
	return nil, session.ErrNoSession
}

func (f *fakeLookup) ParseAccessToken(_ context.Context, token string) (*session.Session, error) {
	if s, ok := f.byAccess[token]; ok {
		return s, nil
	}
	return nil, session.ErrNoSession
}

func TestSessionFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cookieSession := &session.Session{ID: "a", Token: "cookie-token"}
	bearerSession := &session.Session{ID: "b", Token: "bearer-session-token"}
	lookup := &fakeLookup{
		byToken:  map[string]*session.Session{"cookie-token": cookieSession},
		byAccess: map[string]*session.Session{"jwt": bearerSession},
	}
	cookies := NewCookies(session.Config{TTL: time.Hour}, time.Minute)

	tests := []struct {
		name   string
		cookie string
		bearer string
		lookup *fakeLookup
		want   *session.Session
		err    error
	}{
		{name: "cookie", cookie: "cookie-token", want: cookieSession},
		{name: "cookie wins over bearer", cookie: "cookie-token", bearer: "jwt", want: cookieSession},
		{name: "bearer", bearer: "jwt", want: bearerSession},
		{name: "stale cookie falls through", cookie: "stale", bearer: "jwt", want: bearerSession},
		{name: "stale cookie alone", cookie: "stale", err: session.ErrNoSession},
		{name: "bad bearer", bearer: "garbage", err: session.ErrNoSession},
		{name: "nothing", err: session.ErrNoSession},
		{
			name:   "store failure is not masked",
			cookie: "cookie-token",
			bearer: "jwt",
			lookup: &fakeLookup{err: errors.New("redis down")},
			err:    errors.New("redis down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = req

			l := lookup
			if tt.lookup != nil {
				l = tt.lookup
			}

			got, err := SessionFromRequest(c, l, cookies)
			if tt.err != nil {
				require.Error(t, err)
				assert.EqualError(t, err, tt.err.Error())
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}
}
