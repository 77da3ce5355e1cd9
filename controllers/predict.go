package controllers

import (
	"math"
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"

	"annoscope/models"
)

// PredictionClasses Categories the placeholder model can propose
var PredictionClasses = []string{"person", "car", "dog", "cat", "bicycle"}

func uniform(low float64, high float64) float64 {
	return low + rand.Float64()*(high-low)
}

// fakePredict Between one and four random boxes. Stands in for a real
// detector until one is wired behind this endpoint.
func fakePredict() []models.Prediction {
	n := 1 + rand.Intn(4)
	predictions := make([]models.Prediction, 0, n)
	for i := 0; i < n; i++ {
		predictions = append(predictions, models.Prediction{
			BBox: [4]float64{
				uniform(0.05, 0.6),
				uniform(0.05, 0.6),
				uniform(0.1, 0.3),
				uniform(0.1, 0.3),
			},
			Category: PredictionClasses[rand.Intn(len(PredictionClasses))],
			Score:    math.Round(uniform(0.5, 0.99)*100) / 100,
		})
	}
	return predictions
}

// Predict Propose bounding boxes for an image
func (ctl *Controller) Predict(c *gin.Context) {
	image, err := ctl.findImage(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.PredictionResult{ImageID: image.ID, Predictions: fakePredict()})
}
