package overlay

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Rasterizer renders legend text into small transparent textures for the
// billboards.
type Rasterizer struct {
	face    font.Face
	color   color.Color
	padding int
}

// NewRasterizer parses the Go Regular face at the given pixel size.
func NewRasterizer(sizePx float64, c color.Color) (*Rasterizer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse legend font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create legend face: %w", err)
	}
	return &Rasterizer{face: face, color: c, padding: 2}, nil
}

// Close releases the font face.
func (r *Rasterizer) Close() error {
	return r.face.Close()
}

// Render draws one line of text on a transparent background sized to fit.
func (r *Rasterizer) Render(text string) *image.RGBA {
	m := r.face.Metrics()
	width := font.MeasureString(r.face, text).Ceil() + 2*r.padding
	height := (m.Ascent + m.Descent).Ceil() + 2*r.padding

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.color),
		Face: r.face,
		Dot:  fixed.Point26_6{X: fixed.I(r.padding), Y: fixed.I(r.padding) + m.Ascent},
	}
	d.DrawString(text)
	return img
}

// Texture pairs a billboard with its rendered text.
type Texture struct {
	Billboard Billboard
	Image     *image.RGBA
}

// RenderAll renders every billboard.
func (r *Rasterizer) RenderAll(billboards []Billboard) []Texture {
	out := make([]Texture, len(billboards))
	for i, b := range billboards {
		out[i] = Texture{Billboard: b, Image: r.Render(b.Text)}
	}
	return out
}
