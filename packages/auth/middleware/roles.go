package middleware

import (
	"net/http"

	"matchpoint-api/packages/core/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequireRole checks that the authenticated player carries a specific role.
// The role is re-read from the database rather than trusted from the token,
// so demotions take effect immediately.
func RequireRole(db *gorm.DB, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		var player models.Player
		if err := db.First(&player, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Player not found"})
			c.Abort()
			return
		}

		if player.Role != requiredRole {
			c.JSON(http.StatusForbidden, gin.H{
				"error":         "Insufficient permissions",
				"required_role": requiredRole,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin is shorthand for the only elevated role in the system.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return RequireRole(db, models.RoleAdmin)
}
