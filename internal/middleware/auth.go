package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"admin-dashboard/internal/config"
	"admin-dashboard/pkg/utils"
)

const (
	ContextUserIDKey = "userID"
	ContextRoleKey   = "role"
)

// AuthMiddleware rejects requests without a valid bearer access token and
// populates the authenticated identity in the context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := extractClaims(c, cfg)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)

		c.Next()
	}
}

// OptionalAuthMiddleware populates the identity when a valid bearer token is
// present but never rejects the request. Used by logout, where an
// authenticated identity only determines whether an audit entry is written.
func OptionalAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := extractClaims(c, cfg); ok {
			c.Set(ContextUserIDKey, claims.UserID)
			c.Set(ContextRoleKey, claims.Role)
		}

		c.Next()
	}
}

func extractClaims(c *gin.Context, cfg *config.Config) (*utils.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := utils.ValidateToken(parts[1], cfg.JWT.Secret)
	if err != nil {
		return nil, false
	}

	return claims, true
}
