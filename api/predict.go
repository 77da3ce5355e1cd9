package api

import (
	"context"

	"annoscope/models"
)

// Predict POST /predict/:image_id
func (c *Client) Predict(ctx context.Context, imageID string) (*models.PredictionResult, error) {
	var result models.PredictionResult
	if err := c.postJSON(ctx, route("predict", imageID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
