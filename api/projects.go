package api

import (
	"context"

	"annoscope/models"
)

type createProjectInput struct {
	Name string `json:"name"`
}

// ListProjects GET /projects
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.getJSON(ctx, "/projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject POST /projects {name}
func (c *Client) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	var project models.Project
	if err := c.postJSON(ctx, "/projects", createProjectInput{Name: name}, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProject GET /projects/:id
func (c *Client) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := c.getJSON(ctx, route("projects", id), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject DELETE /projects/:id
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.delete(ctx, route("projects", id))
}
