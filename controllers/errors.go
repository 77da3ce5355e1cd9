package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"annoscope/utils"
)

var (
	ErrProjectNotFound    = errors.New("Project not found")
	ErrImageNotFound      = errors.New("Image not found")
	ErrAnnotationNotFound = errors.New("Annotation not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnsupportedImage   = errors.New("image format not supported")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ErrStatusMap Status code answered for each known error
var ErrStatusMap = map[error]int{
	ErrProjectNotFound:    http.StatusNotFound,
	ErrImageNotFound:      http.StatusNotFound,
	ErrAnnotationNotFound: http.StatusNotFound,
	ErrInvalidInput:       http.StatusUnprocessableEntity,
	ErrUnsupportedImage:   http.StatusUnsupportedMediaType,
	ErrUnauthorized:       http.StatusUnauthorized,
}

// invalid Wrap a binding or validation failure
func invalid(err error) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
}

// statusFor Status of the first known error err wraps, 500 otherwise
func statusFor(err error) int {
	for knownErr, statusCode := range ErrStatusMap {
		if errors.Is(err, knownErr) {
			return statusCode
		}
	}
	return http.StatusInternalServerError
}

// LogMiddleware Log every request and turn errors attached with c.Error
// into a {"detail": ...} response
func LogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		if len(c.Errors) != 0 {
			err := c.Errors.Last().Err
			status := statusFor(err)
			detail := err.Error()
			if status == http.StatusInternalServerError {
				log.Error(fmt.Sprintf("%s %s: %s", c.Request.Method, c.Request.URL.Path, err.Error()))
				detail = http.StatusText(status)
			}
			if !c.Writer.Written() {
				c.AbortWithStatusJSON(status, gin.H{"detail": detail})
			}
		}

		log.WithFields(log.Fields{
			"status":     c.Writer.Status(),
			"latency":    time.Since(startTime),
			"ip":         c.ClientIP(),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": c.Writer.Header().Get(utils.RequestIDHeader),
		}).Debug("request")
	}
}
