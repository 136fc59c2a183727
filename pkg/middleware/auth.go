package middleware

import (
	"context"
	"net/http"
	"strings"

	"classcast/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// TokenRevoker reports whether a token ID was invalidated by logout.
// session.Store implements it.
type TokenRevoker interface {
	IsRevoked(ctx context.Context, tokenID string) bool
}

// AuthMiddleware validates the bearer token and stores the caller's
// identity and role on the context. Tokens revoked by logout are rejected.
func AuthMiddleware(jwtService *jwt.Service, sessions TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if sessions != nil && sessions.IsRevoked(c.Request.Context(), claims.ID) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session has been logged out"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Set("token_id", claims.ID)
		c.Set("token_expires_at", claims.ExpiresAt.Time)
		c.Next()
	}
}
