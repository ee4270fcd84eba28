package logout

import (
	"context"
	"errors"
	"log/slog"

	"madrese/auth-service/internal/dto"
	"madrese/auth-service/internal/middleware"
	"madrese/auth-service/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionCloser finds the caller's session and destroys it.
type SessionCloser interface {
	middleware.SessionLookup
	Logout(ctx context.Context, token string) error
}

type Handler struct {
	sessions SessionCloser
	cookies  *middleware.Cookies
	log      *slog.Logger
}

func NewHandler(sessions SessionCloser, cookies *middleware.Cookies, log *slog.Logger) *Handler {
	return &Handler{sessions: sessions, cookies: cookies, log: log}
}

// Logout 用户退出登录
// @Summary 用户退出登录
// @Description 删除服务端会话（Cookie 或 Bearer 访问令牌对应的会话）并清除 Cookie；没有会话时同样返回成功
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response{data=dto.SuccessFlag}
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	s, err := middleware.SessionFromRequest(c, h.sessions, h.cookies)
	switch {
	case err == nil:
		if err := h.sessions.Logout(ctx, s.Token); err != nil {
			h.log.ErrorContext(ctx, "logout failed", "error", err)
		}
	case !errors.Is(err, session.ErrNoSession):
		h.log.ErrorContext(ctx, "resolve session for logout", "error", err)
	}

	h.cookies.ClearSession(c)
	h.cookies.ClearTicket(c)

	dto.SuccessResponse(c, dto.SuccessFlag{Success: true})
}
