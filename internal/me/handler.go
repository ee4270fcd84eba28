package me

import (
	"time"

	"madrese/auth-service/internal/autherr"
	"madrese/auth-service/internal/dto"
	"madrese/auth-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	now func() time.Time
}

func NewHandler() *Handler {
	return &Handler{now: time.Now}
}

// GetCurrentUser 获取当前登录用户信息
// @Summary 获取当前用户信息
// @Description 由会话 Cookie 或 Bearer 访问令牌解析当前用户
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response{data=UserInfoResponse}
// @Failure 401 {object} response.Response "NotAuthenticated"
// @Router /auth/me [get]
func (h *Handler) GetCurrentUser(c *gin.Context) {
	// 从上下文获取用户信息（由中间件设置）
	u, ok := middleware.CurrentUser(c)
	if !ok {
		dto.FailResponse(c, autherr.ErrNotAuthenticated)
		return
	}

	dto.SuccessResponse(c, UserInfoResponse{User: dto.NewUser(u, h.now())})
}

// GetMenu 获取当前用户的导航菜单
// @Summary 获取角色菜单
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response{data=dto.MenuResponse}
// @Failure 401 {object} response.Response "NotAuthenticated"
// @Router /auth/menu [get]
func (h *Handler) GetMenu(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		dto.FailResponse(c, autherr.ErrNotAuthenticated)
		return
	}

	dto.SuccessResponse(c, dto.NewMenu(string(u.Role)))
}
