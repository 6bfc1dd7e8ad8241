package routes

import (
	"github.com/gin-gonic/gin"

	"language-exchange-backend/controllers"
)

// SetupChatRoutes registers the chat-provider token route.
func SetupChatRoutes(router *gin.Engine, chatController *controllers.ChatController, requireAuth gin.HandlerFunc) {
	router.GET("/api/chat/token", requireAuth, chatController.GetStreamTokenHandler)
}
