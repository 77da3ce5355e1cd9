package models

import (
	"fmt"
	"path/filepath"

	uuid "github.com/twinj/uuid"
	"gorm.io/gorm"
)

// Image A file belonging to exactly one project, target of annotation.
// FilePath is where the backend stored the upload and never leaves the server.
type Image struct {
	ID          string       `json:"id" gorm:"primaryKey"`
	ProjectID   string       `json:"project_id,omitempty" gorm:"index;not null"`
	Filename    string       `json:"filename" gorm:"not null"`
	URL         string       `json:"url" gorm:"-"`
	FilePath    string       `json:"-" gorm:"not null"`
	Annotations []Annotation `json:"-" gorm:"foreignKey:ImageID"`
	CreatedAt   int64        `json:"-" gorm:"autoCreateTime:nano;index"`
}

// BeforeCreate Assign a UUID when the caller did not supply one
func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewV4().String()
	}
	return nil
}

// AfterFind Derive the public URL from the stored file
func (i *Image) AfterFind(tx *gorm.DB) error {
	i.URL = StaticURL(i.ProjectID, i.FilePath)
	return nil
}

// StaticURL Public path of a stored image under the static file route
func StaticURL(projectID string, filePath string) string {
	return fmt.Sprintf("/static/images/%s/%s", projectID, filepath.Base(filePath))
}
