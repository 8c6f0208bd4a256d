package render

import (
	"image"
	"image/draw"
	"math"

	"keycap-atlas/internal/keycap"
	"keycap-atlas/internal/overlay"
)

// DrawLegends composites rasterized billboards over a TopView image made
// at the same pixelsPerUnit. Each texture's left edge sits on the anchor
// and its middle row on the anchor's line.
func DrawLegends(dst *image.RGBA, board *keycap.Board, textures []overlay.Texture, pixelsPerUnit float64) {
	for _, t := range textures {
		if t.Image == nil {
			continue
		}
		p := t.Billboard.Position
		x := int(math.Round((p.X + board.Bounds.Width/2) * pixelsPerUnit))
		y := int(math.Round((p.Z+board.Bounds.Height/2)*pixelsPerUnit)) - t.Image.Rect.Dy()/2
		r := t.Image.Rect.Sub(t.Image.Rect.Min).Add(image.Pt(x, y))
		draw.Draw(dst, r, t.Image, t.Image.Rect.Min, draw.Over)
	}
}
