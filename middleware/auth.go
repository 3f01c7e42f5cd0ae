package middleware

import (
	"net/http"
	"strings"

	"roomhive/utils"

	"github.com/gin-gonic/gin"
)

// ContextUserIDKey is where the authenticated user's ID is stored on the
// gin context.
const ContextUserIDKey = "userID"

// JWTAuthMiddleware authenticates the request via a Bearer token and sets
// the actor's user ID on the context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractUserIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// ActorID returns the authenticated user's ID from the gin context.
func ActorID(c *gin.Context) string {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}
