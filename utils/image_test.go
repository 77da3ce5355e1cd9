package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(width int, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	return img
}

func TestThumbnailDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		size          int
		wantW, wantH  int
	}{
		{"landscape", 400, 200, 100, 100, 50},
		{"portrait", 300, 900, 300, 100, 300},
		{"square", 512, 512, 256, 256, 256},
		{"smaller than size", 40, 20, 256, 40, 20},
		{"thin strip", 1000, 1, 100, 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Thumbnail(solid(tt.width, tt.height), tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, out.Bounds().Dx())
			assert.Equal(t, tt.wantH, out.Bounds().Dy())
		})
	}
}

func TestThumbnailKeepsPixels(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 14, 14))
	src.Set(10, 10, color.RGBA{R: 255, A: 255})

	out, err := Thumbnail(src, 64)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), out.Bounds())
	r, _, _, a := out.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
}

func TestThumbnailErrors(t *testing.T) {
	_, err := Thumbnail(solid(4, 4), 0)
	assert.Error(t, err)
	_, err = Thumbnail(solid(4, 4), MaxThumbnailSize+1)
	assert.Error(t, err)
	_, err = Thumbnail(image.NewRGBA(image.Rect(0, 0, 0, 0)), 16)
	assert.Error(t, err)
}

func TestImageBuffers(t *testing.T) {
	img := solid(8, 6)

	jpg, err := ImageToJpgBuffer(img, &jpeg.Options{Quality: 80})
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(jpg))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Width)

	pngBuf, err := ImageToPngBuffer(img)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(pngBuf))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
