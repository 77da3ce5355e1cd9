package api

import (
	"context"
	"encoding/json"
	"net/http"

	"annoscope/models"
)

// ListAnnotations GET /images/:id/annotations
func (c *Client) ListAnnotations(ctx context.Context, imageID string) ([]models.Annotation, error) {
	var annotations []models.Annotation
	if err := c.getJSON(ctx, route("images", imageID, "annotations"), &annotations); err != nil {
		return nil, err
	}
	return annotations, nil
}

// CreateAnnotation POST /images/:id/annotations. body is sent unchanged and
// the backend's answer is returned unchanged.
func (c *Client) CreateAnnotation(ctx context.Context, imageID string, body json.RawMessage) (json.RawMessage, error) {
	var annotation json.RawMessage
	if err := c.sendRaw(ctx, http.MethodPost, route("images", imageID, "annotations"), body, &annotation); err != nil {
		return nil, err
	}
	return annotation, nil
}

// UpdateAnnotation PATCH /images/:id/annotations/:aid, passing body through
// like CreateAnnotation
func (c *Client) UpdateAnnotation(ctx context.Context, imageID string, annotationID string, body json.RawMessage) (json.RawMessage, error) {
	var annotation json.RawMessage
	if err := c.sendRaw(ctx, http.MethodPatch, route("images", imageID, "annotations", annotationID), body, &annotation); err != nil {
		return nil, err
	}
	return annotation, nil
}

// DeleteAnnotation DELETE /images/:id/annotations/:aid
func (c *Client) DeleteAnnotation(ctx context.Context, imageID string, annotationID string) error {
	return c.delete(ctx, route("images", imageID, "annotations", annotationID))
}
