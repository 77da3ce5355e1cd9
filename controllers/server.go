package controllers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"annoscope/utils"
)

// Version Reported by GET /version
const Version = "v0.1.0"

// corsMiddleware Any origin may call the API; browsers need this for the
// web client served from another port
func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// NewRouter Engine serving the annotation API and the stored files
func NewRouter(ctl *Controller) *gin.Engine {
	r := gin.New()
	r.Use(utils.RequestIDMiddleware())
	// LogMiddleware writes error bodies after c.Next, so it must run inside
	// gzip, before its writer is closed
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(LogMiddleware(), gin.Recovery())
	r.Use(corsMiddleware())

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": Version})
	})
	r.Static("/static", ctl.storage.Root())

	v := r.Group("/")
	if secret := ctl.config.Auth.Secret; secret != "" {
		v.Use(AuthMiddleware(secret))
	}
	{
		v.GET("/projects", ctl.FindProjects)
		v.POST("/projects", ctl.CreateProject)
		v.GET("/projects/:id", ctl.FindProject)
		v.DELETE("/projects/:id", ctl.DeleteProject)

		v.GET("/projects/:id/images", ctl.FindImages)
		v.POST("/projects/:id/images", ctl.UploadImages)
		v.GET("/images/:id", ctl.FindImage)
		v.DELETE("/images/:id", ctl.DeleteImage)
		v.GET("/images/:id/thumbnail.jpg", ctl.GetThumbnail(ThumbnailJPEG))
		v.GET("/images/:id/thumbnail.png", ctl.GetThumbnail(ThumbnailPNG))

		v.GET("/images/:id/annotations", ctl.FindAnnotations)
		v.POST("/images/:id/annotations", ctl.CreateAnnotation)
		v.PATCH("/images/:id/annotations/:aid", ctl.UpdateAnnotation)
		v.DELETE("/images/:id/annotations/:aid", ctl.DeleteAnnotation)

		v.POST("/predict/:id", ctl.Predict)
	}
	return r
}
