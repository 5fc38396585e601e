// Package image loads still frames of a board from disk.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/tiff"
)

// ErrUnsupportedFormat indicates a file extension no decoder is registered for.
var ErrUnsupportedFormat = errors.New("image: unsupported format")

// Frame is a decoded still of the board.
type Frame struct {
	Path   string      // source file path, empty when decoded from a reader
	Format string      // Decoder name reported by image.Decode
	Image  image.Image // Decoded pixels
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int {
	if f.Image == nil {
		return 0
	}
	return f.Image.Bounds().Dx()
}

// Height returns the frame height in pixels.
func (f *Frame) Height() int {
	if f.Image == nil {
		return 0
	}
	return f.Image.Bounds().Dy()
}

// Load decodes the image at path.
func Load(path string) (*Frame, error) {
	if !IsSupportedFormat(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	frame, err := Decode(file)
	if err != nil {
		return nil, err
	}
	frame.Path = path
	return frame, nil
}

// Decode reads a frame in any registered format from r.
func Decode(r io.Reader) (*Frame, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &Frame{Format: format, Image: img}, nil
}

// SupportedFormats returns the list of supported image formats.
func SupportedFormats() []string {
	return []string{".tiff", ".tif", ".png", ".jpg", ".jpeg"}
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
