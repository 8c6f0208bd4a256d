// Package image provides photo loading for the keycap atlas.
package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"keycap-atlas/pkg/geometry"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is wrapped by every load failure caused by the file content
// rather than by I/O.
var ErrDecode = errors.New("failed to decode image")

// sniffLen is the header length filetype needs to recognize all formats.
const sniffLen = 262

// Source is a decoded photo ready for compositing.
type Source struct {
	Path   string      // Original file path, empty for uploads from memory
	Image  image.Image // Decoded image data
	Format string      // Decoder name reported by image.Decode
}

// Width returns the image width in pixels.
func (s *Source) Width() int {
	if s == nil || s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (s *Source) Height() int {
	if s == nil || s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dy()
}

// Size returns the image dimensions.
func (s *Source) Size() geometry.Size {
	return geometry.Size{Width: float64(s.Width()), Height: float64(s.Height())}
}

// Empty reports whether there is nothing to draw.
func (s *Source) Empty() bool {
	return s.Size().Empty()
}

// FromImage wraps an already decoded image.
func FromImage(img image.Image) *Source {
	return &Source{Image: img, Format: "memory"}
}

// Decode reads and decodes an image. The header is sniffed first so that
// non-image uploads are rejected before any decoder runs.
func Decode(r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if !filetype.IsImage(head) {
		kind, _ := filetype.Match(head)
		return nil, fmt.Errorf("%w: content is %s", ErrDecode, describe(kind.MIME.Value))
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &Source{Image: img, Format: format}, nil
}

func describe(mime string) string {
	if mime == "" {
		return "not a recognized file type"
	}
	return mime
}

// Load opens and decodes an image file.
func Load(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	src, err := Decode(file)
	if err != nil {
		return nil, err
	}
	src.Path = path
	return src, nil
}

// SupportedFormats returns the list of supported image extensions.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".tif", ".webp"}
}
