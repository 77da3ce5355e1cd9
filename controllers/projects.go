package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"annoscope/models"
)

type CreateProjectInput struct {
	Name string `json:"name" binding:"required"`
}

// findProject Load the project or fail with ErrProjectNotFound
func (ctl *Controller) findProject(id string) (models.Project, error) {
	var project models.Project
	if err := ctl.db.Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, ErrProjectNotFound
		}
		return models.Project{}, err
	}
	return project, nil
}

// FindProjects List all projects
func (ctl *Controller) FindProjects(c *gin.Context) {
	projects := []models.Project{}
	if err := ctl.db.Order("created_at, id").Find(&projects).Error; err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// CreateProject Create a project with a non-blank name
func (ctl *Controller) CreateProject(c *gin.Context) {
	var input CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(invalid(err))
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.Error(invalid(errors.New("name cannot be blank")))
		return
	}

	project := models.Project{Name: name}
	if err := ctl.db.Create(&project).Error; err != nil {
		c.Error(err)
		return
	}
	log.Info(fmt.Sprintf("Created project %s (%s)", project.ID, project.Name))
	c.JSON(http.StatusOK, project)
}

// FindProject Get one project
func (ctl *Controller) FindProject(c *gin.Context) {
	project, err := ctl.findProject(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject Delete a project with its images, annotations and files
func (ctl *Controller) DeleteProject(c *gin.Context) {
	project, err := ctl.findProject(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	var images []models.Image
	err = ctl.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Find(&images).Error; err != nil {
			return err
		}
		imageIDs := tx.Model(&models.Image{}).Select("id").Where("project_id = ?", project.ID)
		if err := tx.Where("image_id IN (?)", imageIDs).Delete(&models.Annotation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
	if err != nil {
		c.Error(err)
		return
	}

	for _, image := range images {
		ctl.forgetThumbnails(image.ID)
	}
	if err := ctl.storage.RemoveProject(project.ID); err != nil {
		log.Warn(fmt.Sprintf("Cannot remove files of project %s: %s", project.ID, err.Error()))
	}
	log.Info(fmt.Sprintf("Deleted project %s with %d images", project.ID, len(images)))
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
