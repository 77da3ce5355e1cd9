package controllers

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"annoscope/utils"
)

// thumbnailParams Parse ?size= and ?Q= against the configured defaults
func (ctl *Controller) thumbnailParams(c *gin.Context) (int, int, error) {
	size := ctl.config.Thumbnail.Size
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return 0, 0, invalid(errors.New("Incorrect value for size."))
		}
		size = parsed
	}
	if size > utils.MaxThumbnailSize {
		return 0, 0, invalid(errors.New("Too large thumbnail requested."))
	}

	quality := ctl.config.Thumbnail.Quality
	if raw := c.Query("Q"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return 0, 0, invalid(errors.New("Incorrect value for quality."))
		}
		quality = parsed
	}
	return size, quality, nil
}

// ThumbnailFormat Encoding of a rendered thumbnail
type ThumbnailFormat string

const (
	ThumbnailJPEG ThumbnailFormat = "jpg"
	ThumbnailPNG  ThumbnailFormat = "png"
)

func (f ThumbnailFormat) contentType() string {
	if f == ThumbnailPNG {
		return "image/png"
	}
	return "image/jpeg"
}

// renderThumbnail Decode the stored file and encode a scaled thumbnail.
// quality only applies to jpg.
func renderThumbnail(path string, size int, quality int, format ThumbnailFormat) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, err.Error())
	}
	thumbnail, err := utils.Thumbnail(img, size)
	if err != nil {
		return nil, err
	}
	if format == ThumbnailPNG {
		return utils.ImageToPngBuffer(thumbnail)
	}
	return utils.ImageToJpgBuffer(thumbnail, &jpeg.Options{Quality: quality})
}

// GetThumbnail Scaled thumbnail of an image, cached per image, format,
// size and quality
func (ctl *Controller) GetThumbnail(format ThumbnailFormat) gin.HandlerFunc {
	return func(c *gin.Context) {
		image, err := ctl.findImage(c.Param("id"))
		if err != nil {
			c.Error(err)
			return
		}
		size, quality, err := ctl.thumbnailParams(c)
		if err != nil {
			c.Error(err)
			return
		}

		key := fmt.Sprintf("%s:%s:%d:%d", image.ID, format, size, quality)
		if cached, found := ctl.thumbnails.Get(key); found {
			c.Data(http.StatusOK, format.contentType(), cached.([]byte))
			return
		}

		buf, err := renderThumbnail(image.FilePath, size, quality, format)
		if err != nil {
			log.Warn(fmt.Sprintf("Cannot render thumbnail of %s: %s", image.ID, err.Error()))
			c.Error(err)
			return
		}
		ctl.thumbnails.Set(key, buf, cache.DefaultExpiration)
		c.Data(http.StatusOK, format.contentType(), buf)
	}
}
