package utils

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"

	// Decoders for uploads
	_ "image/gif"

	"golang.org/x/image/draw"
)

// MaxThumbnailSize Largest edge a thumbnail may be rendered at
const MaxThumbnailSize = 1024

// ImageToJpgBuffer Encode an image as jpg
func ImageToJpgBuffer(img image.Image, options *jpeg.Options) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, options); err != nil {
		return nil, errors.New("jpeg encode error")
	}
	return buf.Bytes(), nil
}

// ImageToPngBuffer Encode an image as png
func ImageToPngBuffer(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, errors.New("png encode error")
	}
	return buf.Bytes(), nil
}

// Thumbnail Scale img so that its longest edge is size pixels, keeping the
// aspect ratio. Images already smaller than size are copied unscaled.
func Thumbnail(img image.Image, size int) (image.Image, error) {
	if size <= 0 || size > MaxThumbnailSize {
		return nil, errors.New("thumbnail size out of range")
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, errors.New("empty image")
	}

	if width <= size && height <= size {
		out := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
		return out, nil
	}

	outWidth, outHeight := size, size
	if width >= height {
		outHeight = max(1, height*size/width)
	} else {
		outWidth = max(1, width*size/height)
	}
	out := image.NewRGBA(image.Rect(0, 0, outWidth, outHeight))
	draw.BiLinear.Scale(out, out.Bounds(), img, bounds, draw.Over, nil)
	return out, nil
}
