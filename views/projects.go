package views

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"annoscope/api"
)

// ProjectList Page listing every project
func (v *Views) ProjectList(c *gin.Context) {
	if err := v.session.Projects.Load(c.Request.Context()); err != nil {
		renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "projects.tmpl", gin.H{
		"title":    "Projects",
		"projects": v.session.Projects.Projects(),
	})
}

// CreateProject Form action creating a project from the name field
func (v *Views) CreateProject(c *gin.Context) {
	if err := v.session.Projects.Add(c.Request.Context(), c.PostForm("name")); err != nil {
		renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// DeleteProject Form action deleting a project
func (v *Views) DeleteProject(c *gin.Context) {
	if err := v.session.Projects.Remove(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	v.session.Images.Forget(c.Param("id"))
	c.Redirect(http.StatusSeeOther, "/")
}

// ProjectDetail Page showing one project and its images
func (v *Views) ProjectDetail(c *gin.Context) {
	ctx := c.Request.Context()
	projectID := c.Param("id")

	project, err := v.backend.GetProject(ctx, projectID)
	if err != nil {
		renderError(c, err)
		return
	}
	if err := v.session.Images.Load(ctx, project.ID); err != nil {
		renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "project.tmpl", gin.H{
		"title":   project.Name,
		"project": project,
		"images":  v.session.Images.Images(project.ID),
	})
}

// UploadImages Form action sending every file of the files field
func (v *Views) UploadImages(c *gin.Context) {
	projectID := c.Param("id")
	form, err := c.MultipartForm()
	if err != nil {
		renderError(c, fmt.Errorf("%w: %s", errBadForm, err.Error()))
		return
	}

	headers := form.File[api.UploadField]
	files := make([]api.File, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			renderError(c, err)
			return
		}
		defer f.Close()
		files = append(files, api.File{Name: header.Filename, Content: f})
	}

	if err := v.session.Images.Upload(c.Request.Context(), projectID, files); err != nil {
		renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/projects/"+projectID)
}

// DeleteImage Form action deleting an image; project_id names the
// collection to reload
func (v *Views) DeleteImage(c *gin.Context) {
	projectID := c.PostForm("project_id")
	if err := v.session.Images.Remove(c.Request.Context(), c.Param("id"), projectID); err != nil {
		renderError(c, err)
		return
	}
	if projectID == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.Redirect(http.StatusSeeOther, "/projects/"+projectID)
}

// Thumbnail Proxy the backend thumbnail so pages never need the API token
func (v *Views) Thumbnail(c *gin.Context) {
	jpg, err := v.backend.Thumbnail(c.Request.Context(), c.Param("id"), 0)
	if err != nil {
		c.Status(statusFor(err))
		return
	}
	c.Data(http.StatusOK, "image/jpeg", jpg)
}
