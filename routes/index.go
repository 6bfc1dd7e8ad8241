package routes

import (
	"github.com/gin-gonic/gin"

	"language-exchange-backend/controllers"
)

// Controllers bundles everything SetupRouter wires up.
type Controllers struct {
	Auth   *controllers.AuthController
	User   *controllers.UserController
	Friend *controllers.FriendController
	Chat   *controllers.ChatController
}

// SetupRouter registers all routes. requireAuth is the session middleware
// guarding everything except signup/login.
func SetupRouter(router *gin.Engine, c Controllers, requireAuth gin.HandlerFunc) {
	SetupAuthRoutes(router, c.Auth, requireAuth)

	SetupUserRoutes(router, c.User, requireAuth)

	SetupFriendRoutes(router, c.Friend, requireAuth)

	SetupChatRoutes(router, c.Chat, requireAuth)
}
