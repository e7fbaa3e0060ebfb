package rp

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-Id"

// RequestID assigns a request id unless the client sent one, and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
			c.Request.Header.Set(HeaderRequestID, id)
		}
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// AccessLog writes one zerolog line per request to the app's log.
func AccessLog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		t := time.Now()
		c.Next()

		app.Log().Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(t)).
			Str("request_id", c.GetHeader(HeaderRequestID)).
			Msg("request")
	}
}
