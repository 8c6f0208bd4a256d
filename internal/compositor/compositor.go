// Package compositor repaints the keycap atlas from a photo under live
// pan, zoom and color adjustments.
package compositor

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"keycap-atlas/internal/atlas"
	srcimage "keycap-atlas/internal/image"
	"keycap-atlas/pkg/colorutil"
	"keycap-atlas/pkg/geometry"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Compositor owns one atlas surface and the parameters last used to paint
// it. Instances share nothing, so several boards can be edited side by side.
type Compositor struct {
	surface    *atlas.Surface
	background color.RGBA
	interp     xdraw.Interpolator

	params  Params
	source  *srcimage.Source
	scratch *image.RGBA
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithBackground sets the flat fill painted under (or instead of) the photo.
func WithBackground(c color.RGBA) Option {
	return func(co *Compositor) {
		co.background = c
	}
}

// WithInterpolator sets the resampling kernel. Defaults to bilinear.
func WithInterpolator(i xdraw.Interpolator) Option {
	return func(co *Compositor) {
		co.interp = i
	}
}

// New creates a compositor with its own atlas of the given size, painted
// with the background fill.
func New(width, height int, opts ...Option) (*Compositor, error) {
	surface, err := atlas.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("compositor: %w", err)
	}
	c := &Compositor{
		surface:    surface,
		background: colorutil.AtlasFill,
		interp:     xdraw.BiLinear,
		params:     DefaultParams(),
		scratch:    image.NewRGBA(surface.Bounds()),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Repaint(c.params, nil)
	return c, nil
}

// Surface returns the atlas for readers. Only the compositor writes to it.
func (c *Compositor) Surface() *atlas.Surface {
	return c.surface
}

// Background returns the flat fill color.
func (c *Compositor) Background() color.RGBA {
	return c.background
}

// Params returns the parameters of the last repaint.
func (c *Compositor) Params() Params {
	return c.params
}

// Source returns the image of the last repaint, or nil.
func (c *Compositor) Source() *srcimage.Source {
	return c.source
}

// Clear repaints the atlas with the flat fill only.
func (c *Compositor) Clear(p Params) {
	c.Repaint(p, nil)
}

// Repaint redraws the whole atlas. It runs to completion under the
// surface's write lock; the same params and source always produce the same
// bytes. A nil or zero-sized source leaves just the background.
func (c *Compositor) Repaint(p Params, src *srcimage.Source) {
	c.params = p
	c.source = src
	c.surface.Paint(func(dst *image.RGBA) {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
		if src.Empty() {
			return
		}
		s2d, ok := c.placement(p, src)
		if !ok {
			return
		}

		// Resample into a transparent scratch layer so the color filter
		// touches photo pixels only, then lay it over the background.
		draw.Draw(c.scratch, c.scratch.Bounds(), image.Transparent, image.Point{}, draw.Src)
		a := s2d.Aff3()
		c.interp.Transform(c.scratch, f64.Aff3(a), src.Image, src.Image.Bounds(), xdraw.Src, nil)
		colorutil.NewFilter(p.Brightness, p.Contrast, p.Saturation, p.HueRotate).ApplyRGBA(c.scratch)
		draw.Draw(dst, dst.Bounds(), c.scratch, image.Point{}, draw.Over)
	})
}

// placement returns the source-to-atlas transform: cover scale times zoom,
// centered on the atlas center shifted by the offsets.
func (c *Compositor) placement(p Params, src *srcimage.Source) (geometry.AffineTransform, bool) {
	aw, ah := float64(c.surface.Width()), float64(c.surface.Height())
	sw, sh := float64(src.Width()), float64(src.Height())

	scale := CoverScale(aw, ah, sw, sh) * p.Zoom
	if !(scale > 0) || math.IsInf(scale, 0) {
		return geometry.AffineTransform{}, false
	}

	b := src.Image.Bounds()
	from := geometry.Point2D{X: float64(b.Min.X) + sw/2, Y: float64(b.Min.Y) + sh/2}
	to := geometry.Point2D{X: aw/2 + p.OffsetX*aw, Y: ah/2 + p.OffsetY*ah}
	t := geometry.ScaleAbout(scale, from, to)
	if !t.Invertible() || math.IsNaN(t.TX) || math.IsNaN(t.TY) {
		return geometry.AffineTransform{}, false
	}
	return t, true
}

// CoverScale returns the smallest uniform scale at which a source of size
// sw x sh fully covers a target of size tw x th. It returns 0 for a
// degenerate source.
func CoverScale(tw, th, sw, sh float64) float64 {
	if sw <= 0 || sh <= 0 {
		return 0
	}
	return math.Max(tw/sw, th/sh)
}
