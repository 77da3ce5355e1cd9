package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"annoscope/models"
)

// findAnnotation Load an annotation of the image or fail with ErrAnnotationNotFound
func (ctl *Controller) findAnnotation(imageID string, annotationID string) (models.Annotation, error) {
	var annotation models.Annotation
	err := ctl.db.Where("id = ? AND image_id = ?", annotationID, imageID).First(&annotation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Annotation{}, ErrAnnotationNotFound
		}
		return models.Annotation{}, err
	}
	return annotation, nil
}

// CreateAnnotation Add an annotation to an image
func (ctl *Controller) CreateAnnotation(c *gin.Context) {
	image, err := ctl.findImage(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	var input models.AnnotationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(invalid(err))
		return
	}

	annotation := models.Annotation{
		ImageID: image.ID,
		Label:   input.Label,
		X:       *input.X,
		Y:       *input.Y,
		Width:   *input.Width,
		Height:  *input.Height,
	}
	if err := ctl.db.Create(&annotation).Error; err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, annotation)
}

// FindAnnotations List the annotations of an image
func (ctl *Controller) FindAnnotations(c *gin.Context) {
	image, err := ctl.findImage(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	annotations := []models.Annotation{}
	if err := ctl.db.Where("image_id = ?", image.ID).Order("created_at, id").Find(&annotations).Error; err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, annotations)
}

// UpdateAnnotation Change the fields present in the body
func (ctl *Controller) UpdateAnnotation(c *gin.Context) {
	image, err := ctl.findImage(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	annotation, err := ctl.findAnnotation(image.ID, c.Param("aid"))
	if err != nil {
		c.Error(err)
		return
	}

	var update models.AnnotationUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.Error(invalid(err))
		return
	}
	if update.Label != nil && *update.Label == "" {
		c.Error(invalid(errors.New("label cannot be empty")))
		return
	}

	update.Apply(&annotation)
	if err := ctl.db.Save(&annotation).Error; err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, annotation)
}

// DeleteAnnotation Remove an annotation from an image
func (ctl *Controller) DeleteAnnotation(c *gin.Context) {
	image, err := ctl.findImage(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	annotation, err := ctl.findAnnotation(image.ID, c.Param("aid"))
	if err != nil {
		c.Error(err)
		return
	}

	if err := ctl.db.Delete(&annotation).Error; err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
