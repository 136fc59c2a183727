package http

import (
	"net/http"

	"classcast/internal/entity"

	"github.com/gin-gonic/gin"
)

// RequireAction rejects requests whose authenticated role lacks the
// capability. Use cases repeat the check so it holds without HTTP too.
func RequireAction(action entity.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := entity.UserRole(c.GetString("user_role"))
		if !role.Can(action) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}
