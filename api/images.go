package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"annoscope/models"
)

// UploadField Multipart field every uploaded file is sent under
const UploadField = "files"

// File One file of an upload
type File struct {
	Name    string
	Content io.Reader
}

// ListImages GET /projects/:id/images
func (c *Client) ListImages(ctx context.Context, projectID string) ([]models.Image, error) {
	var images []models.Image
	if err := c.getJSON(ctx, route("projects", projectID, "images"), &images); err != nil {
		return nil, err
	}
	return images, nil
}

// UploadImages POST /projects/:id/images with one multipart part per file
func (c *Client) UploadImages(ctx context.Context, projectID string, files []File) ([]models.Image, error) {
	body := new(bytes.Buffer)
	form := multipart.NewWriter(body)
	for _, file := range files {
		part, err := form.CreateFormFile(UploadField, file.Name)
		if err != nil {
			return nil, fmt.Errorf("add %s to upload: %w", file.Name, err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, fmt.Errorf("read %s for upload: %w", file.Name, err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	var images []models.Image
	path := route("projects", projectID, "images")
	if err := c.do(ctx, http.MethodPost, path, body, form.FormDataContentType(), &images); err != nil {
		return nil, err
	}
	return images, nil
}

// GetImage GET /images/:id
func (c *Client) GetImage(ctx context.Context, id string) (*models.Image, error) {
	var image models.Image
	if err := c.getJSON(ctx, route("images", id), &image); err != nil {
		return nil, err
	}
	return &image, nil
}

// DeleteImage DELETE /images/:id
func (c *Client) DeleteImage(ctx context.Context, id string) error {
	return c.delete(ctx, route("images", id))
}

// Thumbnail GET /images/:id/thumbnail.jpg, size 0 lets the backend pick
func (c *Client) Thumbnail(ctx context.Context, id string, size int) ([]byte, error) {
	path := route("images", id, "thumbnail.jpg")
	if size > 0 {
		path += "?size=" + strconv.Itoa(size)
	}
	var jpg []byte
	if err := c.do(ctx, http.MethodGet, path, nil, "", &jpg); err != nil {
		return nil, err
	}
	return jpg, nil
}
