package models

import (
	uuid "github.com/twinj/uuid"
	"gorm.io/gorm"
)

// Annotation A labelled bounding box on an image. Coordinates are
// normalised to the image size, so every value lies in [0,1].
type Annotation struct {
	ID        string  `json:"id" gorm:"primaryKey"`
	ImageID   string  `json:"image_id,omitempty" gorm:"index;not null"`
	Label     string  `json:"label" gorm:"not null"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	CreatedAt int64   `json:"-" gorm:"autoCreateTime:nano"`
}

// BeforeCreate Assign a UUID when the caller did not supply one
func (a *Annotation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewV4().String()
	}
	return nil
}

// AnnotationInput Body of a create request. Every coordinate is required.
type AnnotationInput struct {
	Label  string   `json:"label" binding:"required"`
	X      *float64 `json:"x" binding:"required,gte=0,lte=1"`
	Y      *float64 `json:"y" binding:"required,gte=0,lte=1"`
	Width  *float64 `json:"width" binding:"required,gte=0,lte=1"`
	Height *float64 `json:"height" binding:"required,gte=0,lte=1"`
}

// AnnotationUpdate Body of a partial update; nil fields are left untouched
type AnnotationUpdate struct {
	Label  *string  `json:"label,omitempty"`
	X      *float64 `json:"x,omitempty" binding:"omitempty,gte=0,lte=1"`
	Y      *float64 `json:"y,omitempty" binding:"omitempty,gte=0,lte=1"`
	Width  *float64 `json:"width,omitempty" binding:"omitempty,gte=0,lte=1"`
	Height *float64 `json:"height,omitempty" binding:"omitempty,gte=0,lte=1"`
}

// Apply Copy the set fields of the update onto the annotation
func (u AnnotationUpdate) Apply(a *Annotation) {
	if u.Label != nil {
		a.Label = *u.Label
	}
	if u.X != nil {
		a.X = *u.X
	}
	if u.Y != nil {
		a.Y = *u.Y
	}
	if u.Width != nil {
		a.Width = *u.Width
	}
	if u.Height != nil {
		a.Height = *u.Height
	}
}
