package middlewares

import (
	"github.com/gin-gonic/gin"
)

// Lesson pages embed YouTube players, so frame-src must allow the two
// official embed origins; everything else stays same-origin.
const portalCSP = "default-src 'self'; base-uri 'none'; object-src 'none'; " +
	"img-src 'self' data: https:; style-src 'self' 'unsafe-inline'; " +
	"frame-src https://www.youtube.com https://www.youtube-nocookie.com"

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("X-XSS-Protection", "0")
		c.Header("Content-Security-Policy", portalCSP)
		c.Next()
	}
}
