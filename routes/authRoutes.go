package routes

import (
	"github.com/gin-gonic/gin"

	"language-exchange-backend/controllers"
)

// SetupAuthRoutes registers signup/login/session routes.
func SetupAuthRoutes(router *gin.Engine, authController *controllers.AuthController, requireAuth gin.HandlerFunc) {
	authRoute := router.Group("/api/auth")
	{
		authRoute.POST("/signup", authController.SignupHandler)
		authRoute.POST("/login", authController.LoginHandler)
		authRoute.POST("/logout", authController.LogoutHandler)
		authRoute.POST("/onboarding", requireAuth, authController.OnboardHandler)
		authRoute.GET("/me", requireAuth, authController.MeHandler)
	}
}
