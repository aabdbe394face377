package handler

import (
	"github.com/gin-gonic/gin"

	"legalai-review/internal/transport/http/middleware"
)

func getUserIDFromContext(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}

func getUsernameFromContext(c *gin.Context) string {
	usernameAny, exists := c.Get(middleware.ContextUsernameKey)
	if !exists {
		return ""
	}
	username, _ := usernameAny.(string)
	return username
}
