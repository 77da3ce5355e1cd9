// Package router holds the static route table of the web client.
package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"annoscope/utils"
	"annoscope/views"
)

// Route One URL shape and the view rendering it
type Route struct {
	Name string
	Path string
	View func(*views.Views, *gin.Context)
}

// Routes The three pages of the client. No guards, no nesting.
var Routes = []Route{
	{Name: "projects", Path: "/", View: (*views.Views).ProjectList},
	{Name: "project", Path: "/projects/:id", View: (*views.Views).ProjectDetail},
	{Name: "annotate", Path: "/images/:id", View: (*views.Views).AnnotationWorkspace},
}

// New Engine serving the route table and the form actions of its views
func New(v *views.Views) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(utils.RequestIDMiddleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.SetHTMLTemplate(views.Templates())

	for _, route := range Routes {
		view := route.View
		r.GET(route.Path, func(c *gin.Context) {
			view(v, c)
		})
	}

	// Form actions
	r.POST("/projects", v.CreateProject)
	r.POST("/projects/:id/delete", v.DeleteProject)
	r.POST("/projects/:id/images", v.UploadImages)
	r.POST("/images/:id/delete", v.DeleteImage)
	r.GET("/images/:id/thumbnail.jpg", v.Thumbnail)

	// Annotation pass-through for scripts and forms
	r.GET("/images/:id/annotations", v.ListAnnotations)
	r.POST("/images/:id/annotations", v.CreateAnnotation)
	r.PATCH("/images/:id/annotations/:aid", v.UpdateAnnotation)
	r.DELETE("/images/:id/annotations/:aid", v.DeleteAnnotation)
	r.POST("/images/:id/annotations/:aid/delete", v.DeleteAnnotation)
	r.POST("/images/:id/predict", v.Predict)

	return r
}
