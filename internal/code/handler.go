package code

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

// send 发送验证码
// @Summary 发送手机验证码
// @Description 为手机号生成 6 位验证码并通过短信发送，之前的验证码随之失效
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body SendVerificationRequest true "发送验证码请求"
// @Success 200 {object} response.Response{data=dto.SuccessFlag}
// @Failure 400 {object} response.Response "InvalidPhoneFormat"
// @Failure 503 {object} response.Response "TransportFailure"
// @Router /auth/send-verification [post]
func (h *Handler) send(c *gin.Context) {
	var req SendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ParseErrorResponse(c, err)
		return
	}

	if err := h.service.SendVerification(c.Request.Context(), req.PhoneNumber); err != nil {
		dto.FailResponse(c, err)
		return
	}

	dto.SuccessResponse(c, dto.SuccessFlag{Success: true})
}

// verify 验证手机号
// @Summary 验证手机验证码
// @Description 验证成功后验证码作废，并写入 registration_ticket Cookie 供完善资料使用
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body VerifyPhoneRequest true "验证请求"
// @Success 200 {object} response.Response{data=dto.SuccessFlag}
// @Failure 400 {object} response.Response "NoChallenge / Expired / InvalidCode"
// @Failure 429 {object} response.Response "TooManyAttempts"
// @Router /auth/verify-phone [post]
func (h *Handler) verify(c *gin.Context) {
	var req VerifyPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ParseErrorResponse(c, err)
		return
	}

	ticket, err := h.service.VerifyPhone(c.Request.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		dto.FailResponse(c, err)
		return
	}

	h.cookies.SetTicket(c, ticket)
	dto.SuccessResponse(c, dto.SuccessFlag{Success: true})
}
