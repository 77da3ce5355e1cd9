package models

// Prediction A model-proposed bounding box, [x, y, width, height] normalised
type Prediction struct {
	BBox     [4]float64 `json:"bbox"`
	Category string     `json:"category"`
	Score    float64    `json:"score"`
}

// PredictionResult Response of the predict endpoint
type PredictionResult struct {
	ImageID     string       `json:"image_id"`
	Predictions []Prediction `json:"predictions"`
}
