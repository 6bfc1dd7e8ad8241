package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"language-exchange-backend/middleware"
	"language-exchange-backend/services"
)

type AuthController struct {
	UserService *services.UserService
	// CookieSecure marks the session cookie Secure (production only).
	CookieSecure bool
}

func NewAuthController(userService *services.UserService, cookieSecure bool) *AuthController {
	return &AuthController{
		UserService:  userService,
		CookieSecure: cookieSecure,
	}
}

func (ac *AuthController) setSessionCookie(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	maxAge := int(ac.UserService.JWTExpiration.Seconds())
	ctx.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", ac.CookieSecure, true)
}

// SignupHandler registers a new account and starts a session.
func (ac *AuthController) SignupHandler(ctx *gin.Context) {
	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "message": "Invalid request body"})
		return
	}

	user, err := ac.UserService.Register(ctx.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := ac.UserService.GenerateJWT(user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ac.setSessionCookie(ctx, token)

	ctx.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
}

// LoginHandler authenticates an account and starts a session.
func (ac *AuthController) LoginHandler(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "message": "Invalid request body"})
		return
	}

	user, err := ac.UserService.Authenticate(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := ac.UserService.GenerateJWT(user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ac.setSessionCookie(ctx, token)

	ctx.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": user})
}

// LogoutHandler clears the session cookie.
func (ac *AuthController) LogoutHandler(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, "", -1, "/", "", ac.CookieSecure, true)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// OnboardHandler completes the caller's profile.
func (ac *AuthController) OnboardHandler(ctx *gin.Context) {
	actorID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var input services.OnboardInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "message": "Invalid request body"})
		return
	}

	user, err := ac.UserService.Onboard(ctx.Request.Context(), actorID, input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User onboarded successfully", "user": user})
}

// MeHandler returns the authenticated user.
func (ac *AuthController) MeHandler(ctx *gin.Context) {
	actorID, ok := currentUser(ctx)
	if !ok {
		return
	}

	user, err := ac.UserService.GetUserByID(ctx.Request.Context(), actorID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}
