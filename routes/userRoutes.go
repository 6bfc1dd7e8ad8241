package routes

import (
	"github.com/gin-gonic/gin"

	"language-exchange-backend/controllers"
)

// SetupUserRoutes registers discovery and friend-list routes.
func SetupUserRoutes(router *gin.Engine, userController *controllers.UserController, requireAuth gin.HandlerFunc) {
	router.GET("/users", requireAuth, userController.GetRecommendedUsersHandler)
	router.GET("/users/friends", requireAuth, userController.GetMyFriendsHandler)

	router.PUT("/api/users/avatar", requireAuth, userController.UploadAvatarHandler)
}
