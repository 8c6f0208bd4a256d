// Package atlas provides the fixed-resolution raster shared by every
// keycap top face.
package atlas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// Default atlas resolution. The 2:1 aspect roughly matches a 60% board.
const (
	DefaultWidth  = 1024
	DefaultHeight = 512
)

// Surface is a mutable RGBA raster with a single writer. Paint holds the
// write lock for the whole callback, so readers only ever see complete
// frames.
type Surface struct {
	mu      sync.RWMutex
	img     *image.RGBA
	version uint64
}

// New creates a surface of the given size, initially transparent.
func New(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("atlas size must be positive, got %dx%d", width, height)
	}
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

// Bounds returns the raster bounds. They never change after New.
func (s *Surface) Bounds() image.Rectangle {
	return s.img.Rect
}

// Width returns the raster width in pixels.
func (s *Surface) Width() int {
	return s.img.Rect.Dx()
}

// Height returns the raster height in pixels.
func (s *Surface) Height() int {
	return s.img.Rect.Dy()
}

// Paint runs fn with exclusive access to the raster and bumps the version
// once fn returns.
func (s *Surface) Paint(fn func(dst *image.RGBA)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.img)
	s.version++
}

// Fill paints the whole surface with one color.
func (s *Surface) Fill(c color.Color) {
	s.Paint(func(dst *image.RGBA) {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	})
}

// Version returns a counter that increases on every Paint. A render loop
// can compare it against the last uploaded value to skip redundant uploads.
func (s *Surface) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns a copy of the current raster.
func (s *Surface) Snapshot() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := image.NewRGBA(s.img.Rect)
	copy(out.Pix, s.img.Pix)
	return out
}

// CopyPix copies the raw RGBA bytes into dst, which must hold at least
// 4*Width*Height bytes, and returns the version they belong to.
func (s *Surface) CopyPix(dst []byte) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(dst) < len(s.img.Pix) {
		return 0, fmt.Errorf("atlas buffer too small: %d < %d bytes", len(dst), len(s.img.Pix))
	}
	copy(dst, s.img.Pix)
	return s.version, nil
}

// At returns the color at (x, y).
func (s *Surface) At(x, y int) color.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img.RGBAAt(x, y)
}

// Sample returns the color at normalized coordinates with v = 1 at the top
// row of the raster, matching the keycap UV convention.
func (s *Surface) Sample(u, v float64) color.RGBA {
	w, h := s.Width(), s.Height()
	x := clampInt(int(u*float64(w)), 0, w-1)
	y := clampInt(int((1-v)*float64(h)), 0, h-1)
	return s.At(x, y)
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
