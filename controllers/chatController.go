package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"language-exchange-backend/services"
)

type ChatController struct {
	UserService   *services.UserService
	StreamService *services.StreamService
}

func NewChatController(userService *services.UserService, streamService *services.StreamService) *ChatController {
	return &ChatController{
		UserService:   userService,
		StreamService: streamService,
	}
}

// GetStreamTokenHandler mints a chat token for the caller. The caller (and
// the optional targetUserId counterpart) are re-mirrored to the provider
// first, best effort, so both sides exist before a channel opens.
func (cc *ChatController) GetStreamTokenHandler(ctx *gin.Context) {
	actorID, ok := currentUser(ctx)
	if !ok {
		return
	}

	user, err := cc.UserService.GetUserByID(ctx.Request.Context(), actorID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	cc.StreamService.UpsertUser(ctx.Request.Context(), user)

	if targetHex := ctx.Query("targetUserId"); targetHex != "" {
		if targetID, err := primitive.ObjectIDFromHex(targetHex); err == nil {
			if target, err := cc.UserService.GetUserByID(ctx.Request.Context(), targetID); err == nil {
				cc.StreamService.UpsertUser(ctx.Request.Context(), target)
			}
		}
	}

	token, err := cc.StreamService.CreateToken(actorID.Hex())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}
