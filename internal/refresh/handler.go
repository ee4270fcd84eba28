package refresh

import (
	"errors"

	"madrese/auth-service/internal/autherr"
	"madrese/auth-service/internal/dto"
	"madrese/auth-service/internal/middleware"
	"madrese/auth-service/internal/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	cookies *middleware.Cookies
}

func NewHandler(service *Service, cookies *middleware.Cookies) *Handler {
	return &Handler{service: service, cookies: cookies}
}

// Handle 刷新访问令牌
// @Summary 刷新访问令牌
// @Description 轮换当前会话（Cookie 或 Bearer 访问令牌）的令牌并返回新的访问令牌
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response{data=RefreshTokenResponse} "成功返回新的访问令牌"
// @Failure 401 {object} response.Response "会话无效或已过期"
// @Router /auth/refresh [post]
func (h *Handler) Handle(c *gin.Context) {
	sess, err := middleware.SessionFromRequest(c, h.service.sessions, h.cookies)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			h.cookies.ClearSession(c)
			err = autherr.ErrNotAuthenticated
		}
		dto.FailResponse(c, err)
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), sess.Token)
	if err != nil {
		if errors.Is(err, autherr.ErrNotAuthenticated) {
			h.cookies.ClearSession(c)
		}
		dto.FailResponse(c, err)
		return
	}

	h.cookies.SetSession(c, result.NewSessionToken)
	dto.SuccessResponse(c, RefreshTokenResponse{AccessToken: result.AccessToken})
}
