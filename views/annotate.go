package views

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// AnnotationWorkspace Page showing one image with its annotations
func (v *Views) AnnotationWorkspace(c *gin.Context) {
	ctx := c.Request.Context()
	image, err := v.backend.GetImage(ctx, c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	annotations, err := v.backend.ListAnnotations(ctx, image.ID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "annotate.tmpl", gin.H{
		"title":       image.Filename,
		"image":       image,
		"imageURL":    v.backend.ResolveURL(image.URL),
		"annotations": annotations,
	})
}

// readBody The annotation payload to forward. JSON bodies are passed on
// byte for byte; form fields become a JSON object, with numeric values sent
// as numbers except in text fields. Nothing is validated here, the backend decides what it accepts.
func readBody(c *gin.Context) (json.RawMessage, error) {
	if wantsJSON(c) {
		body, err := c.GetRawData()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errBadForm, err.Error())
		}
		return body, nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %s", errBadForm, err.Error())
	}

	fields := make(map[string]any, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) == 1 {
			fields[key] = formValue(key, values[0])
			continue
		}
		list := make([]any, 0, len(values))
		for _, value := range values {
			list = append(list, formValue(key, value))
		}
		fields[key] = list
	}
	return json.Marshal(fields)
}

// textFields Form fields always sent as strings
var textFields = map[string]bool{"label": true}

func formValue(key string, value string) any {
	if textFields[key] {
		return value
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return value
}

// finish Answer a script with the backend's body, a form with a redirect to
// the workspace
func finish(c *gin.Context, imageID string, result json.RawMessage) {
	if wantsJSON(c) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", result)
		return
	}
	c.Redirect(http.StatusSeeOther, "/images/"+imageID)
}

// fail Answer a script with JSON, a form with the error page
func fail(c *gin.Context, err error) {
	if wantsJSON(c) {
		jsonError(c, err)
		return
	}
	renderError(c, err)
}

// ListAnnotations GET pass-through
func (v *Views) ListAnnotations(c *gin.Context) {
	annotations, err := v.backend.ListAnnotations(c.Request.Context(), c.Param("id"))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, annotations)
}

// CreateAnnotation POST pass-through
func (v *Views) CreateAnnotation(c *gin.Context) {
	imageID := c.Param("id")
	body, err := readBody(c)
	if err != nil {
		fail(c, err)
		return
	}
	annotation, err := v.backend.CreateAnnotation(c.Request.Context(), imageID, body)
	if err != nil {
		fail(c, err)
		return
	}
	finish(c, imageID, annotation)
}

// UpdateAnnotation PATCH pass-through
func (v *Views) UpdateAnnotation(c *gin.Context) {
	imageID := c.Param("id")
	body, err := readBody(c)
	if err != nil {
		fail(c, err)
		return
	}
	annotation, err := v.backend.UpdateAnnotation(c.Request.Context(), imageID, c.Param("aid"), body)
	if err != nil {
		fail(c, err)
		return
	}
	finish(c, imageID, annotation)
}

// DeleteAnnotation DELETE pass-through, also reachable from the page form
func (v *Views) DeleteAnnotation(c *gin.Context) {
	imageID := c.Param("id")
	if err := v.backend.DeleteAnnotation(c.Request.Context(), imageID, c.Param("aid")); err != nil {
		fail(c, err)
		return
	}
	finish(c, imageID, json.RawMessage(`{"status":"deleted"}`))
}

// Predict Proposed boxes for the image
func (v *Views) Predict(c *gin.Context) {
	result, err := v.backend.Predict(c.Request.Context(), c.Param("id"))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
