package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"language-exchange-backend/utils"
)

// ContextUserID is the gin context key the middleware stores the
// authenticated user's id under.
const ContextUserID = "user_id"

// SessionCookie is the cookie the session token travels in.
const SessionCookie = "jwt"

func abortUnauthorized(c *gin.Context, message string) {
	appErr := utils.ErrUnauthorized(message)
	c.JSON(appErr.Status, gin.H{"code": appErr.Code, "message": appErr.Message})
	c.Abort()
}

// AuthMiddleware validates the session JWT and stores the acting user's id in
// the context. The token is read from the session cookie first, falling back
// to a Bearer Authorization header for non-browser clients.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, _ := c.Cookie(SessionCookie)
		if tokenString == "" {
			if authHeader := c.GetHeader("Authorization"); authHeader != "" {
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if tokenString == "" {
			abortUnauthorized(c, "No token provided")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil {
			var message string
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				message = "Token has expired"
			case errors.Is(err, jwt.ErrTokenSignatureInvalid):
				message = "Invalid token signature"
			default:
				message = "Invalid token"
			}
			abortUnauthorized(c, message)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			abortUnauthorized(c, "Invalid token")
			return
		}
		userID, ok := claims[ContextUserID].(string)
		if !ok || userID == "" {
			abortUnauthorized(c, "Token carries no user identity")
			return
		}
		c.Set(ContextUserID, userID)

		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id placed in the context by
// AuthMiddleware.
func CurrentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	raw, ok := c.Get(ContextUserID)
	if !ok {
		return primitive.NilObjectID, false
	}
	hex, ok := raw.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
