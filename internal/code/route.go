package code

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/send-verification", h.send)
	r.POST("/verify-phone", h.verify)
}
