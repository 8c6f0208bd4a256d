// Package canvas displays the atlas, either as the raw texture or as a
// top-down picture of the board it decorates.
package canvas

import (
	"image"
	"image/color"
	"log"

	"keycap-atlas/internal/app"
	"keycap-atlas/internal/keycap"
	"keycap-atlas/internal/overlay"
	"keycap-atlas/internal/render"
	"keycap-atlas/pkg/colorutil"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const (
	minZoom  = 0.25
	maxZoom  = 8.0
	zoomStep = 1.25

	previewPixelsPerUnit = 48
)

// Mode selects what the view shows.
type Mode int

const (
	ModeBoard Mode = iota // keycaps sampled through their UV rects
	ModeAtlas             // the texture as stored
)

// AtlasView shows a session's atlas. It implements render.Texture so the
// session marks it dirty after each repaint.
type AtlasView struct {
	session *app.Session
	mode    Mode
	zoom    float64
	gap     color.Color

	// legend textures, rendered once per board
	legends      *overlay.Rasterizer
	legendBoard  *keycap.Board
	legendImages []overlay.Texture

	image  *fynecanvas.Image
	scroll *container.Scroll
}

var _ render.Texture = (*AtlasView)(nil)

// NewAtlasView creates a view and binds it to the session.
func NewAtlasView(session *app.Session) *AtlasView {
	v := &AtlasView{
		session: session,
		zoom:    1,
		gap:     colorutil.KeycapSide,
	}
	v.image = fynecanvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	v.image.FillMode = fynecanvas.ImageFillContain
	v.image.ScaleMode = fynecanvas.ImageScaleSmooth
	v.scroll = container.NewScroll(v.image)
	v.scroll.Direction = container.ScrollBoth

	raster, err := overlay.NewRasterizer(session.Config().LabelStyle.TextSize*previewPixelsPerUnit, colorutil.White)
	if err != nil {
		log.Printf("Canvas: legends disabled: %v", err)
	} else {
		v.legends = raster
	}

	session.BindTexture(v)
	v.update()
	return v
}

// Container returns the widget to place in a layout.
func (v *AtlasView) Container() fyne.CanvasObject {
	return v.scroll
}

// MarkDirty re-samples the atlas.
func (v *AtlasView) MarkDirty() {
	v.update()
}

// SetMode switches between board and raw atlas display.
func (v *AtlasView) SetMode(m Mode) {
	v.mode = m
	v.update()
}

// Mode returns the display mode.
func (v *AtlasView) Mode() Mode {
	return v.mode
}

// ZoomIn increases the display zoom.
func (v *AtlasView) ZoomIn() {
	v.SetZoom(v.zoom * zoomStep)
}

// ZoomOut decreases the display zoom.
func (v *AtlasView) ZoomOut() {
	v.SetZoom(v.zoom / zoomStep)
}

// SetZoom sets the display zoom; 1 shows one image pixel per device pixel.
func (v *AtlasView) SetZoom(z float64) {
	if z < minZoom {
		z = minZoom
	}
	if z > maxZoom {
		z = maxZoom
	}
	v.zoom = z
	v.resize()
}

// Zoom returns the display zoom.
func (v *AtlasView) Zoom() float64 {
	return v.zoom
}

func (v *AtlasView) update() {
	var img image.Image
	board := v.session.Board()
	if v.mode == ModeBoard && board != nil {
		top, err := render.TopView(board, v.session.Surface(), previewPixelsPerUnit, v.gap)
		if err != nil {
			log.Printf("Canvas: %v", err)
			return
		}
		v.drawLegends(top, board)
		img = top
	} else {
		img = v.session.Surface().Snapshot()
	}
	v.image.Image = img
	v.resize()
	v.image.Refresh()
}

func (v *AtlasView) drawLegends(dst *image.RGBA, board *keycap.Board) {
	if v.legends == nil {
		return
	}
	if board != v.legendBoard {
		v.legendImages = v.legends.RenderAll(v.session.Billboards())
		v.legendBoard = board
	}
	render.DrawLegends(dst, board, v.legendImages, previewPixelsPerUnit)
}

func (v *AtlasView) resize() {
	if v.image.Image == nil {
		return
	}
	b := v.image.Image.Bounds()
	size := fyne.NewSize(float32(float64(b.Dx())*v.zoom), float32(float64(b.Dy())*v.zoom))
	v.image.SetMinSize(size)
	v.image.Resize(size)
	v.scroll.Refresh()
}
