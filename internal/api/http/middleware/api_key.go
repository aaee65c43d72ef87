package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKey guards mutating routes with a shared X-API-Key header. An
// empty expected key disables the check, which is the development
// default.
func APIKey(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			c.Next()
			return
		}

		if c.GetHeader("X-API-Key") != expected {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": "invalid API key",
			})
			return
		}

		c.Next()
	}
}
