package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"language-exchange-backend/middleware"
	"language-exchange-backend/services"
	"language-exchange-backend/utils"
)

type FriendController struct {
	FriendService *services.FriendService
}

func NewFriendController(friendService *services.FriendService) *FriendController {
	return &FriendController{FriendService: friendService}
}

// respondError maps an AppError to its status and machine code; anything
// else is logged and reported as internal.
func respondError(ctx *gin.Context, err error) {
	if appErr, ok := utils.AsAppError(err); ok {
		ctx.JSON(appErr.Status, gin.H{"code": appErr.Code, "message": appErr.Message})
		return
	}
	logrus.WithError(err).Error("request failed")
	ctx.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL", "message": "Internal server error"})
}

// currentUser pulls the authenticated user's id from the context, replying
// 401 when the middleware did not run or stored garbage.
func currentUser(ctx *gin.Context) (primitive.ObjectID, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		respondError(ctx, utils.ErrUnauthorized("Not authorized"))
	}
	return userID, ok
}

func parseIDParam(ctx *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "message": "Invalid " + name})
		return primitive.NilObjectID, false
	}
	return id, true
}

// SendFriendRequest creates a pending request to the recipient in the path.
func (fc *FriendController) SendFriendRequest(ctx *gin.Context) {
	actorID, ok := currentUser(ctx)
	if !ok {
		return
	}
	recipientID, ok := parseIDParam(ctx, "recipientId")
	if !ok {
		return
	}

	request, err := fc.FriendService.SendFriendRequest(ctx.Request.Context(), actorID, recipientID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Friend request sent", "request": request})
}

// AcceptFriendRequest accepts a pending request addressed to the caller.
func (fc *FriendController) AcceptFriendRequest(ctx *gin.Context) {
	actorID, ok := currentUser(ctx)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(ctx, "requestId")
	if !ok {
		return
	}

	request, err := fc.FriendService.AcceptFriendRequest(ctx.Request.Context(), requestID, actorID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Friend request accepted", "request": request})
}

// RejectFriendRequest rejects a pending request addressed to the caller.
func (fc *FriendController) RejectFriendRequest(ctx *gin.Context) {
	actorID, ok := currentUser(ctx)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(ctx, "requestId")
	if !ok {
		return
	}

	request, err := fc.FriendService.RejectFriendRequest(ctx.Request.Context(), requestID, actorID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Friend request rejected", "request": request})
}

// CancelFriendRequest deletes a pending request the caller sent.
func (fc *FriendController) CancelFriendRequest(ctx *gin.Context) {
	actorID, ok := currentUser(ctx)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(ctx, "requestId")
	if !ok {
		return
	}

	if err := fc.FriendService.CancelFriendRequest(ctx.Request.Context(), requestID, actorID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Friend request cancelled"})
}

// GetFriendRequests returns the caller's incoming pending requests together
// with the accepted ones.
func (fc *FriendController) GetFriendRequests(ctx *gin.Context) {
	actorID, ok := currentUser(ctx)
	if !ok {
		return
	}

	incoming, err := fc.FriendService.ListIncoming(ctx.Request.Context(), actorID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	accepted, err := fc.FriendService.ListAccepted(ctx.Request.Context(), actorID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"incomingRequests": incoming,
		"acceptedRequests": accepted,
	})
}

// GetOutgoingFriendRequests returns the caller's pending outgoing requests.
func (fc *FriendController) GetOutgoingFriendRequests(ctx *gin.Context) {
	actorID, ok := currentUser(ctx)
	if !ok {
		return
	}

	outgoing, err := fc.FriendService.ListOutgoing(ctx.Request.Context(), actorID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"outgoingRequests": outgoing})
}
