package logout

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	// 退出登录不需要认证中间件
	r.POST("/logout", h.Logout)
}
