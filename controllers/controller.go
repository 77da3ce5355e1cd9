// Package controllers is the reference annotation backend: projects,
// images and annotations persisted with gorm and served with gin.
package controllers

import (
	"strings"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"annoscope/utils"
)

// Controller Handlers of the annotation API
type Controller struct {
	db         *gorm.DB
	storage    *Storage
	thumbnails *cache.Cache
	config     utils.BackendConfig
}

// NewController Create the handlers over an open database and storage tree
func NewController(db *gorm.DB, storage *Storage, config utils.BackendConfig) *Controller {
	return &Controller{
		db:         db,
		storage:    storage,
		thumbnails: cache.New(config.Thumbnail.CacheTTL, 2*config.Thumbnail.CacheTTL),
		config:     config,
	}
}

// forgetThumbnails Drop cached thumbnails of an image
func (ctl *Controller) forgetThumbnails(imageID string) {
	prefix := imageID + ":"
	for key := range ctl.thumbnails.Items() {
		if strings.HasPrefix(key, prefix) {
			ctl.thumbnails.Delete(key)
		}
	}
}
