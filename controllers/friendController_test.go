package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"language-exchange-backend/middleware"
	"language-exchange-backend/utils"
)

// The handlers validate identity and path ids before touching the service,
// so these paths are exercised with no database behind the controller.
func newFriendTestRouter(authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if authenticated {
		router.Use(func(c *gin.Context) {
			c.Set(middleware.ContextUserID, primitive.NewObjectID().Hex())
		})
	}

	fc := NewFriendController(nil)
	router.POST("/friend-request/:recipientId", fc.SendFriendRequest)
	router.PUT("/friend-request/:requestId/accept", fc.AcceptFriendRequest)
	router.PUT("/friend-request/:requestId/reject", fc.RejectFriendRequest)
	router.DELETE("/friend-request/:requestId", fc.CancelFriendRequest)
	return router
}

func TestFriendHandlersRequireIdentity(t *testing.T) {
	router := newFriendTestRouter(false)

	cases := []struct {
		method string
		path   string
	}{
		{"POST", "/friend-request/" + primitive.NewObjectID().Hex()},
		{"PUT", "/friend-request/" + primitive.NewObjectID().Hex() + "/accept"},
		{"PUT", "/friend-request/" + primitive.NewObjectID().Hex() + "/reject"},
		{"DELETE", "/friend-request/" + primitive.NewObjectID().Hex()},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	}
}

func TestFriendHandlersRejectMalformedIDs(t *testing.T) {
	router := newFriendTestRouter(true)

	cases := []struct {
		method string
		path   string
	}{
		{"POST", "/friend-request/not-an-id"},
		{"PUT", "/friend-request/not-an-id/accept"},
		{"PUT", "/friend-request/not-an-id/reject"},
		{"DELETE", "/friend-request/not-an-id"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	}
}

func TestRespondErrorMapsAppErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, utils.ErrInvalidState("no longer pending"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	respondError(c, utils.ErrUnauthorized("Not authorized"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	respondError(c, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL")
}
