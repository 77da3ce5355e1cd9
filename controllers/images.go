package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"annoscope/models"
)

// UploadField Multipart field holding the uploaded files
const UploadField = "files"

// findImage Load the image or fail with ErrImageNotFound
func (ctl *Controller) findImage(id string) (models.Image, error) {
	var image models.Image
	if err := ctl.db.Where("id = ?", id).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Image{}, ErrImageNotFound
		}
		return models.Image{}, err
	}
	return image, nil
}

// UploadImages Store every file of the multipart upload in the project
func (ctl *Controller) UploadImages(c *gin.Context) {
	project, err := ctl.findProject(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.Error(invalid(err))
		return
	}
	files := form.File[UploadField]
	if len(files) == 0 {
		c.Error(invalid(errors.New("no files uploaded")))
		return
	}

	images := make([]models.Image, 0, len(files))
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			c.Error(err)
			return
		}
		path, err := ctl.storage.Save(project.ID, fileHeader.Filename, file)
		file.Close()
		if err != nil {
			c.Error(err)
			return
		}

		image := models.Image{ProjectID: project.ID, Filename: fileHeader.Filename, FilePath: path}
		if err := ctl.db.Create(&image).Error; err != nil {
			ctl.storage.Remove(path)
			c.Error(err)
			return
		}
		image.URL = models.StaticURL(project.ID, path)
		log.Info(fmt.Sprintf("Stored %s for project %s as %s", fileHeader.Filename, project.ID, path))
		images = append(images, image)
	}

	c.JSON(http.StatusOK, images)
}

// FindImages List the images of a project
func (ctl *Controller) FindImages(c *gin.Context) {
	images := []models.Image{}
	if err := ctl.db.Where("project_id = ?", c.Param("id")).Order("created_at, id").Find(&images).Error; err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, images)
}

// FindImage Get one image
func (ctl *Controller) FindImage(c *gin.Context) {
	image, err := ctl.findImage(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, image)
}

// DeleteImage Delete an image, its annotations and its file
func (ctl *Controller) DeleteImage(c *gin.Context) {
	image, err := ctl.findImage(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	err = ctl.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("image_id = ?", image.ID).Delete(&models.Annotation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&image).Error
	})
	if err != nil {
		c.Error(err)
		return
	}

	ctl.forgetThumbnails(image.ID)
	if err := ctl.storage.Remove(image.FilePath); err != nil {
		log.Warn(fmt.Sprintf("Cannot remove file %s: %s", image.FilePath, err.Error()))
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
