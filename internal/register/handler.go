package register

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

// handle 完善资料并创建账号
// @Summary 完善资料
// @Description 使用已验证的手机号创建账号并登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body CompleteProfileRequest true "资料"
// @Success 201 {object} response.Response{data=dto.AuthResponse}
// @Failure 400 {object} response.Response "字段校验失败或 RegistrationExpired"
// @Failure 409 {object} response.Response "DuplicateIdentity"
// @Router /auth/complete-profile [post]
func (h *Handler) handle(c *gin.Context) {
	var req CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ParseErrorResponse(c, err)
		return
	}

	result, err := h.service.CompleteProfile(c.Request.Context(), h.cookies.Ticket(c), req)
	if err != nil {
		dto.FailResponse(c, err)
		return
	}

	h.cookies.ClearTicket(c)
	h.cookies.SetSession(c, result.SessionToken)
	dto.CreatedResponse(c, result.Response)
}
