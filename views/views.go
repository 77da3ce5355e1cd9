// Package views renders the three pages of the web client and the form
// actions behind them. Pages read the session stores; annotation calls go
// straight through to the backend.
package views

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"annoscope/api"
	"annoscope/models"
	"annoscope/store"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates Parsed page templates
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
}

// Backend Calls the pages make outside the stores
type Backend interface {
	GetProject(ctx context.Context, id string) (*models.Project, error)
	GetImage(ctx context.Context, id string) (*models.Image, error)
	Thumbnail(ctx context.Context, id string, size int) ([]byte, error)
	ListAnnotations(ctx context.Context, imageID string) ([]models.Annotation, error)
	CreateAnnotation(ctx context.Context, imageID string, body json.RawMessage) (json.RawMessage, error)
	UpdateAnnotation(ctx context.Context, imageID string, annotationID string, body json.RawMessage) (json.RawMessage, error)
	DeleteAnnotation(ctx context.Context, imageID string, annotationID string) error
	Predict(ctx context.Context, imageID string) (*models.PredictionResult, error)
	ResolveURL(path string) string
}

// Views Page and action handlers bound to one session
type Views struct {
	session *store.Session
	backend Backend
}

// New Bind the handlers to a session and backend
func New(session *store.Session, backend Backend) *Views {
	return &Views{session: session, backend: backend}
}

var errBadForm = errors.New("malformed form")

// statusFor Status shown to the browser for a failed backend call
func statusFor(err error) int {
	switch {
	case errors.Is(err, api.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, api.ErrValidation), errors.Is(err, errBadForm):
		return http.StatusBadRequest
	case errors.Is(err, api.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, context.Canceled):
		// Client went away
		return 499
	}
	return http.StatusBadGateway
}

// logFailure Log a failed action with the backend status when there is one
func logFailure(c *gin.Context, err error) {
	log.WithFields(log.Fields{
		"method":         c.Request.Method,
		"path":           c.Request.URL.Path,
		"backend_status": api.StatusCode(err),
	}).Warn(err.Error())
}

// renderError Show err as an HTML page
func renderError(c *gin.Context, err error) {
	status := statusFor(err)
	logFailure(c, err)
	c.HTML(status, "error.tmpl", gin.H{
		"title":   "Error",
		"status":  status,
		"message": err.Error(),
	})
}

// jsonError Answer err as {"detail": ...}
func jsonError(c *gin.Context, err error) {
	status := statusFor(err)
	logFailure(c, err)
	c.JSON(status, gin.H{"detail": err.Error()})
}

// wantsJSON Whether the request came from a script rather than a form
func wantsJSON(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEJSON
}
