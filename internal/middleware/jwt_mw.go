package middleware

import (
	"net/http"
	"strings"

	"streetbite/internal/model"
	"streetbite/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthUserKey = "authUser"
	AuthRoleKey = "authRole"
)

// JWTAuthMiddleware creates a middleware for JWT authentication
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required"})
			return
		}

		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(tokenString) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid authorization header format"})
			return
		}

		claims, err := jwtUtil.ValidateToken(strings.TrimSpace(tokenString))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthRoleKey, claims.Role)

		c.Next()
	}
}

// ActorFromContext returns the authenticated caller set by JWTAuthMiddleware
func ActorFromContext(c *gin.Context) (model.Actor, bool) {
	userID, ok := c.Get(AuthUserKey)
	if !ok {
		return model.Actor{}, false
	}
	id, ok := userID.(int64)
	if !ok {
		return model.Actor{}, false
	}
	role, _ := c.Get(AuthRoleKey)
	roleStr, _ := role.(string)
	return model.Actor{UserID: id, Role: roleStr}, true
}
