package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RoleMiddleware allows the request through only when the authenticated user
// holds one of the required roles.
func RoleMiddleware(db *gorm.DB, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		var userRoles []string
		err = db.Table("roles").
			Joins("JOIN user_roles ON user_roles.role_id = roles.id").
			Where("user_roles.user_id = ?", userID).
			Pluck("roles.name", &userRoles).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user roles"})
			return
		}

		hasRequiredRole := false
		for _, userRole := range userRoles {
			for _, requiredRole := range requiredRoles {
				if strings.EqualFold(userRole, requiredRole) {
					hasRequiredRole = true
					break
				}
			}
			if hasRequiredRole {
				break
			}
		}

		if !hasRequiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "Forbidden",
				"message":  "You don't have permission to access this resource",
				"required": requiredRoles,
			})
			return
		}

		c.Set("user_roles", userRoles)
		c.Next()
	}
}

// OrganizerMiddleware is a convenience middleware for organizer or admin access.
func OrganizerMiddleware(db *gorm.DB) gin.HandlerFunc {
	return RoleMiddleware(db, "organizer", "admin")
}

// AdminMiddleware is a convenience middleware for admin-only access.
func AdminMiddleware(db *gorm.DB) gin.HandlerFunc {
	return RoleMiddleware(db, "admin")
}
