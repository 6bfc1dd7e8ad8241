package routes

import (
	"github.com/gin-gonic/gin"

	"language-exchange-backend/controllers"
)

// SetupFriendRoutes registers the friend-request lifecycle routes.
func SetupFriendRoutes(router *gin.Engine, friendController *controllers.FriendController, requireAuth gin.HandlerFunc) {
	router.POST("/friend-request/:recipientId", requireAuth, friendController.SendFriendRequest)
	router.PUT("/friend-request/:requestId/accept", requireAuth, friendController.AcceptFriendRequest)
	router.PUT("/friend-request/:requestId/reject", requireAuth, friendController.RejectFriendRequest)
	router.DELETE("/friend-request/:requestId", requireAuth, friendController.CancelFriendRequest)
	router.GET("/friend-requests", requireAuth, friendController.GetFriendRequests)
	router.GET("/outgoing-friend-requests", requireAuth, friendController.GetOutgoingFriendRequests)
}
