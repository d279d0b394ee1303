package compositor

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

// Format identifies an export serialization format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// FormatForPath picks the export format from the file extension.
// PNG is the default.
func FormatForPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".webp" {
		return FormatWebP
	}
	return FormatPNG
}

// Encode writes the image to w in the given format.
func Encode(w io.Writer, f Format, img image.Image) error {
	switch f {
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("failed to encode WebP: %w", err)
		}
	default:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
	}
	return nil
}

// Save encodes the image in the format implied by the path's extension and
// writes it. The file is only written after a successful encode, so a
// failed export never leaves a partial file behind.
func Save(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatForPath(path), img); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
