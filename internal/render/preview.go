package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"keycap-atlas/internal/atlas"
	"keycap-atlas/internal/keycap"
)

// TopView paints a flat, top-down picture of the board: each key's top
// face is filled by sampling the atlas through the key's UV rectangle, the
// same way a renderer maps the texture onto the mesh. Gaps show bg.
func TopView(board *keycap.Board, surface *atlas.Surface, pixelsPerUnit float64, bg color.Color) (*image.RGBA, error) {
	if !(pixelsPerUnit > 0) {
		return nil, fmt.Errorf("pixels per unit must be positive, got %v", pixelsPerUnit)
	}
	w := int(math.Ceil(board.Bounds.Width * pixelsPerUnit))
	h := int(math.Ceil(board.Bounds.Height * pixelsPerUnit))
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for _, k := range board.Keycaps() {
		px := k.Footprint().Scaled(pixelsPerUnit).Pixels()
		span := k.UV.Span()
		dx, dy := float64(px.Dx()), float64(px.Dy())
		clip := px.Intersect(out.Rect)
		for py := clip.Min.Y; py < clip.Max.Y; py++ {
			// fraction down the key face, 0 at its back edge
			fz := (float64(py-px.Min.Y) + 0.5) / dy
			for x := clip.Min.X; x < clip.Max.X; x++ {
				fx := (float64(x-px.Min.X) + 0.5) / dx
				uv := span.Lerp(fx, fz)
				out.SetRGBA(x, py, surface.Sample(uv.X, uv.Y))
			}
		}
	}
	return out, nil
}
