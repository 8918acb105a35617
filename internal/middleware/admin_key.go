package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trovehq/trove-backend/internal/common"
)

// AdminKeyAuth authenticates administrative requests against a configured
// API key. Checks the Authorization header (raw or Bearer-prefixed).
func AdminKeyAuth(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminKey == "" {
			common.ErrorResponse(c, http.StatusServiceUnavailable, "Admin API not configured", nil)
			c.Abort()
			return
		}

		key := c.GetHeader("Authorization")
		key = strings.TrimPrefix(key, "Bearer ")
		if key == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "Authorization required", nil)
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) != 1 {
			common.ErrorResponse(c, http.StatusUnauthorized, "Invalid admin key", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
