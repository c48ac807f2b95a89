// README: Request logging middleware writing through the structured logger.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"trippo/internal/log"
)

func Logging(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		logger.LogRequest(c.Request.Method, path, c.ClientIP(), c.Writer.Status(), time.Since(start).Milliseconds())
	}
}
