package models

import (
	uuid "github.com/twinj/uuid"
	"gorm.io/gorm"
)

// Project Top-level grouping of images for annotation
type Project struct {
	ID        string  `json:"id" gorm:"primaryKey"`
	Name      string  `json:"name" gorm:"not null"`
	Images    []Image `json:"-" gorm:"foreignKey:ProjectID"`
	CreatedAt int64   `json:"-" gorm:"autoCreateTime:nano;index"`
}

// BeforeCreate Assign a UUID when the caller did not supply one
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewV4().String()
	}
	return nil
}
