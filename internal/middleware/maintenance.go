package middleware

import (
	"net/http"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/service"
	"github.com/gin-gonic/gin"
)

// Maintenance blocks mutating requests from non-admins while maintenance
// mode is on. Reads stay available so the dashboard can show the state.
func Maintenance(settings *service.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		if !settings.MaintenanceOn(c.Request.Context()) {
			c.Next()
			return
		}

		if role, exists := c.Get("user_role"); exists && model.Role(role.(string)) == model.RoleAdmin {
			c.Next()
			return
		}

		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service under maintenance"})
		c.Abort()
	}
}
