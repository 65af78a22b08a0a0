package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggingMiddleware logs request details
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method

		if query != "" {
			path = path + "?" + query
		}

		userID := ""
		if id, exists := c.Get(UserIDKey); exists {
			if uid, ok := id.(uuid.UUID); ok {
				userID = uid.String()
			}
		}

		if userID != "" {
			log.Printf("[%s] %d | %s | %s | %s | user=%s",
				method,
				status,
				latency,
				clientIP,
				path,
				userID,
			)
		} else {
			log.Printf("[%s] %d | %s | %s | %s",
				method,
				status,
				latency,
				clientIP,
				path,
			)
		}

		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				log.Printf("Error: %v", err.Err)
			}
		}
	}
}
