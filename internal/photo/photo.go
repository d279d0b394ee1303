// Package photo provides base photograph loading and preview fit math.
package photo

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"hat-studio/pkg/geometry"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Layer holds the uploaded base photograph and its native dimensions.
// The native size is captured once on load and is used only to size the
// export surface.
type Layer struct {
	Path  string      // Original file path
	Image image.Image // Decoded image data
}

// Load decodes the image at path and returns a Layer. Non-image files are
// rejected before any decode attempt.
func Load(path string) (*Layer, error) {
	if !IsSupportedFormat(path) {
		return nil, fmt.Errorf("%s is not a supported image file", filepath.Base(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return &Layer{Path: path, Image: img}, nil
}

// Width returns the native image width in pixels.
func (l *Layer) Width() int {
	if l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dx()
}

// Height returns the native image height in pixels.
func (l *Layer) Height() int {
	if l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dy()
}

// NativeSize returns the native image dimensions.
func (l *Layer) NativeSize() geometry.Size {
	return geometry.NewSize(float64(l.Width()), float64(l.Height()))
}

// FitContain returns the displayed size of an image with the given native
// size when fitted inside box preserving aspect ratio ("contain"). The
// image is never scaled up past its native size by more than the box
// demands; both dimensions fit within the box and at least one is flush
// against it.
func FitContain(native, box geometry.Size) geometry.Size {
	if native.IsZero() || box.IsZero() {
		return geometry.Size{}
	}

	scale := box.Width / native.Width
	if s := box.Height / native.Height; s < scale {
		scale = s
	}

	return geometry.NewSize(native.Width*scale, native.Height*scale)
}

// SupportedFormats returns the accepted image file extensions.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".tiff", ".tif", ".bmp", ".webp"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
