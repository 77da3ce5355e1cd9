package utils

import (
	"github.com/gin-gonic/gin"
	uuid "github.com/twinj/uuid"
)

// RequestIDHeader Response header carrying the request id
const RequestIDHeader = "X-Request-Id"

// RequestIDMiddleware Generate a UUID and attach it to each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set(RequestIDHeader, uuid.NewV4().String())
		c.Next()
	}
}
