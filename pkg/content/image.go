package content

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedImage is returned for files that are not jpg, jpeg or png images.
var ErrUnsupportedImage = errors.New("unsupported image")

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Image is an uploaded picture kept alongside the request.
type Image struct {
	Name   string
	Data   []byte
	Format string
	Width  int
	Height int
}

// Describe renders a one-line preview, e.g. "beach.png (800x600, png)".
func (img *Image) Describe() string {
	if img == nil {
		return ""
	}
	return fmt.Sprintf("%s (%dx%d, %s)", img.Name, img.Width, img.Height, img.Format)
}

// LoadImage reads the file at path and checks that it decodes as a jpeg or png.
// Surrounding quotes from drag-and-drop paths are stripped.
func LoadImage(path string) (*Image, error) {
	path = strings.Trim(strings.TrimSpace(path), `"'`)
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrUnsupportedImage)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !allowedImageExts[ext] {
		return nil, fmt.Errorf("%w: %q must be jpg, jpeg or png", ErrUnsupportedImage, filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	return DecodeImage(filepath.Base(path), data)
}

// DecodeImage validates raw image bytes and records their dimensions.
func DecodeImage(name string, data []byte) (*Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedImage, name, err)
	}

	return &Image{
		Name:   name,
		Data:   data,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
