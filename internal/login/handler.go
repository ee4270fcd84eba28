package login

import (
	"madrese/auth-service/internal/dto"
	"madrese/auth-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	cookies *middleware.Cookies
}

func NewHandler(service *Service, cookies *middleware.Cookies) *Handler {
	return &Handler{service: service, cookies: cookies}
}

// handle 用户登录
// @Summary 国家身份证号登录
// @Description 使用国家身份证号和后四位密码登录，会话令牌写入 httpOnly Cookie
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录请求"
// @Success 200 {object} response.Response{data=dto.AuthResponse}
// @Failure 400 {object} response.Response "格式错误"
// @Failure 401 {object} response.Response "InvalidCredentials"
// @Router /auth/login [post]
func (h *Handler) handle(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ParseErrorResponse(c, err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		dto.FailResponse(c, err)
		return
	}

	h.cookies.SetSession(c, result.SessionToken)
	dto.SuccessResponse(c, result.Response)
}
