package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/oxabz/time-tracker/internal/errors"
	"github.com/oxabz/time-tracker/internal/service"
)

// Auth requires a valid bearer token on every request when authentication is
// configured. With no owner password set, the gate is transparent.
func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authService.Enabled() {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithError(c, apperrors.Unauthorized("missing bearer token"))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			abortWithError(c, apperrors.Unauthorized("missing bearer token"))
			return
		}

		if _, apiErr := authService.ParseToken(token); apiErr != nil {
			abortWithError(c, apiErr)
			return
		}

		c.Next()
	}
}

func abortWithError(c *gin.Context, apiErr *apperrors.APIError) {
	c.AbortWithStatusJSON(apiErr.Status, gin.H{
		"error": gin.H{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}
