package me

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the endpoints that need a session; auth is the
// session middleware.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth gin.HandlerFunc) {
	r.GET("/me", auth, h.GetCurrentUser)
	r.GET("/menu", auth, h.GetMenu)
}
