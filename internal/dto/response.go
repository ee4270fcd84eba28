package dto

import (
	"net/http"

	"madrese/auth-service/internal/autherr"
	res "madrese/auth-service/packages/response"

	"github.com/gin-gonic/gin"
)

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, res.SuccessResponse(data))
}

func CreatedResponse(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, res.SuccessResponse(data))
}

func ErrorResponse(c *gin.Context, err *res.BusinessError) {
	c.JSON(err.HTTPStatus(), res.FromBusinessError(err))
}

// FailResponse renders any service error. Errors outside the taxonomy are
// logged by the request logger through c.Error.
func FailResponse(c *gin.Context, err error) {
	bizErr := autherr.Business(err)
	if bizErr.Kind == "" {
		_ = c.Error(err)
	}
	ErrorResponse(c, bizErr)
}

// ParseErrorResponse 请求体无法解析
func ParseErrorResponse(c *gin.Context, err error) {
	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.ParseError),
		res.WithErrorMessage("درخواست نامعتبر است"),
		res.WithError(err),
	))
}
