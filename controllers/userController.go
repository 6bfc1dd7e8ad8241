package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"language-exchange-backend/services"
	"language-exchange-backend/storage"
)

type UserController struct {
	UserService *services.UserService
	Storage     storage.Provider
}

func NewUserController(userService *services.UserService, storageProvider storage.Provider) *UserController {
	return &UserController{
		UserService: userService,
		Storage:     storageProvider,
	}
}

// GetRecommendedUsersHandler lists onboarded users the caller could connect
// with, annotated with requestSent.
func (uc *UserController) GetRecommendedUsersHandler(ctx *gin.Context) {
	actorID, ok := currentUser(ctx)
	if !ok {
		return
	}

	current, err := uc.UserService.GetUserByID(ctx.Request.Context(), actorID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	recommended, err := uc.UserService.GetRecommendedUsers(ctx.Request.Context(), current)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"recommendedUsers": recommended})
}

// GetMyFriendsHandler returns the caller's friend list.
func (uc *UserController) GetMyFriendsHandler(ctx *gin.Context) {
	actorID, ok := currentUser(ctx)
	if !ok {
		return
	}

	current, err := uc.UserService.GetUserByID(ctx.Request.Context(), actorID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	friends, err := uc.UserService.GetFriends(ctx.Request.Context(), current)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"friends": friends})
}

var allowedAvatarExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadAvatarHandler stores a new profile picture through the storage
// provider. The object name is derived from the user id, so a re-upload
// replaces the previous avatar.
func (uc *UserController) UploadAvatarHandler(ctx *gin.Context) {
	actorID, ok := currentUser(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("avatar")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "message": "Missing avatar file"})
		return
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedAvatarExts[ext] {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "message": "Unsupported image type"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(ctx, err)
		return
	}
	defer file.Close()

	url, err := uc.Storage.Upload(file, "avatar_"+actorID.Hex()+ext)
	if err != nil {
		respondError(ctx, err)
		return
	}

	user, err := uc.UserService.UpdateAvatar(ctx.Request.Context(), actorID, url)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Avatar updated", "user": user})
}
