package middleware

import (
	"net/http"
	"slices"

	"streetbite/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware lets the request through only if the token role is one of allowedRoles
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Role not found in token, ensure JWT middleware runs first"})
			return
		}

		userRole, ok := roleVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid role type in token"})
			return
		}

		if !slices.Contains(allowedRoles, userRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "You do not have permission to access this resource"})
			return
		}

		c.Next()
	}
}

// AdminMiddleware replaces the old shared admin code: admin screens need the admin role
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}

// StandManagerMiddleware allows owners and admins
func StandManagerMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleOwner, model.RoleAdmin)
}
