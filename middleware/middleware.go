package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger is a Gin middleware for logging HTTP requests and responses.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)
		method := c.Request.Method
		uri := c.Request.RequestURI
		statusCode := c.Writer.Status()
		clientIP := c.ClientIP()
		errorsStr := c.Errors.ByType(gin.ErrorTypePrivate).String()
		if errorsStr == "" {
			errorsStr = "None"
		}

		c.Writer.Header().Set("X-Response-Time", latency.String())

		log.Printf("[GIN] %s | %3d | %13v | %15s | %-7s %s\n      Errors: %s",
			startTime.Format("2006/01/02 - 15:04:05"),
			statusCode,
			latency,
			clientIP,
			method,
			uri,
			errorsStr,
		)
	}
}

// Cors is a Gin middleware enabling cross-origin requests from the SPA.
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-User-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
