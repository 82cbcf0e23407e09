package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// CacheControl marks responses as publicly cacheable for maxAge seconds.
// Handlers that fail call NoStore before writing the error body.
func CacheControl(maxAge int) gin.HandlerFunc {
	value := fmt.Sprintf("public, max-age=%d, s-maxage=%d", maxAge, maxAge)
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}

// NoStore overrides any cache header for the current response.
func NoStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
}
