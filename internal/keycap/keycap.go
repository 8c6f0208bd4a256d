// Package keycap derives per-key box dimensions, positions and atlas
// texture rectangles from a layout table.
package keycap

import (
	"fmt"
	"math"

	"keycap-atlas/internal/layout"
	"keycap-atlas/pkg/geometry"
)

// Dimensions are the world-space constants the builder works from.
type Dimensions struct {
	Unit      float64 `json:"unit"`       // Edge length of a 1u key
	Gap       float64 `json:"gap"`        // Spacing between neighbouring keys and rows
	KeyHeight float64 `json:"key_height"` // Box height along Y
}

// DefaultDimensions returns the standard keycap constants.
func DefaultDimensions() Dimensions {
	return Dimensions{Unit: 1, Gap: 0.15, KeyHeight: 0.5}
}

// Validate checks that the constants describe a buildable board.
func (d Dimensions) Validate() error {
	if !(d.Unit > 0) || math.IsInf(d.Unit, 0) {
		return fmt.Errorf("keycap unit must be positive, got %v", d.Unit)
	}
	if !(d.Gap >= 0) || math.IsInf(d.Gap, 0) {
		return fmt.Errorf("keycap gap must be non-negative, got %v", d.Gap)
	}
	if !(d.KeyHeight > 0) || math.IsInf(d.KeyHeight, 0) {
		return fmt.Errorf("keycap height must be positive, got %v", d.KeyHeight)
	}
	return nil
}

// KeyWidth returns the world width of a key spanning the given units. A
// wider key swallows the gaps it covers, so 2u lines up with two 1u keys.
func (d Dimensions) KeyWidth(units float64) float64 {
	return units*d.Unit + (units-1)*d.Gap
}

// UVRect is a key's rectangle in normalized atlas coordinates. The v axis
// is already flipped: v = 1 is the top edge of the atlas image, which is
// the board's back edge (row 0).
type UVRect struct {
	UMin float64 `json:"u_min"`
	UMax float64 `json:"u_max"`
	VMin float64 `json:"v_min"`
	VMax float64 `json:"v_max"`
}

// Span returns the rectangle walked from the key's back-left corner: u
// grows with X and v falls toward the front edge.
func (r UVRect) Span() geometry.Rect {
	return geometry.Rect{X: r.UMin, Y: r.VMax, Width: r.UMax - r.UMin, Height: r.VMin - r.VMax}
}

// Keycap is the immutable geometry of one key.
type Keycap struct {
	Index  int     `json:"index"`
	Row    int     `json:"row"`
	Column int     `json:"column"`
	Label  string  `json:"label,omitempty"`
	Units  float64 `json:"units"`

	SizeX float64 `json:"size_x"`
	SizeY float64 `json:"size_y"`
	SizeZ float64 `json:"size_z"`

	// Near-left corner of the key in board space. X grows to the right,
	// Z grows toward later rows; the board starts at (0, 0).
	OriginX float64 `json:"origin_x"`
	OriginZ float64 `json:"origin_z"`

	UV UVRect `json:"uv"`
}

// Footprint returns the key's top face in board space, X across and Z
// down the board.
func (k Keycap) Footprint() geometry.Rect {
	return geometry.Rect{X: k.OriginX, Y: k.OriginZ, Width: k.SizeX, Height: k.SizeZ}
}

// Board is the result of a build: every keycap plus the overall bounds.
type Board struct {
	Name       string        `json:"name"`
	Dimensions Dimensions    `json:"dimensions"`
	Bounds     geometry.Size `json:"bounds"` // Width along X, Height along Z
	keycaps    []Keycap
}

// Keycaps returns a copy of the keycap records in build order.
func (b *Board) Keycaps() []Keycap {
	return append([]Keycap(nil), b.keycaps...)
}

// Len returns the number of keycaps.
func (b *Board) Len() int {
	return len(b.keycaps)
}

// At returns the keycap at index i.
func (b *Board) At(i int) Keycap {
	return b.keycaps[i]
}

// UVAt maps a board-space point to atlas coordinates with the v flip
// applied. Points on the board map into the unit square.
func (b *Board) UVAt(x, z float64) (u, v float64) {
	return x / b.Bounds.Width, 1 - z/b.Bounds.Height
}

// Center returns the key's top-face center in world space, with the board
// centered on the origin and the key resting on y = 0.
func (b *Board) Center(k Keycap) geometry.Point3D {
	return geometry.Point3D{
		X: k.OriginX + k.SizeX/2 - b.Bounds.Width/2,
		Y: k.SizeY,
		Z: k.OriginZ + k.SizeZ/2 - b.Bounds.Height/2,
	}
}

// Build walks the layout rows top to bottom and keys left to right,
// producing one Keycap per key. It has no side effects.
func Build(l *layout.Layout, dims Dimensions) (*Board, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	board := &Board{
		Name:       l.Name,
		Dimensions: dims,
		keycaps:    make([]Keycap, 0, l.NumKeys()),
	}

	// First pass: positions and sizes. The bounds are taken from the same
	// sums that place the last key of each row so the far edges map to
	// exactly 1.0.
	var z, totalWidth, totalHeight float64
	for r, row := range l.Rows {
		var x float64
		for c, spec := range row {
			w := dims.KeyWidth(float64(spec.Width))
			end := x + w
			board.keycaps = append(board.keycaps, Keycap{
				Index:   len(board.keycaps),
				Row:     r,
				Column:  c,
				Label:   spec.Label,
				Units:   float64(spec.Width),
				SizeX:   w,
				SizeY:   dims.KeyHeight,
				SizeZ:   dims.Unit,
				OriginX: x,
				OriginZ: z,
			})
			totalWidth = math.Max(totalWidth, end)
			x = end + dims.Gap
		}
		totalHeight = z + dims.Unit
		z += dims.Unit + dims.Gap
	}
	board.Bounds = geometry.Size{Width: totalWidth, Height: totalHeight}

	// Second pass: atlas rectangles.
	for i := range board.keycaps {
		k := &board.keycaps[i]
		uMin, vTop := board.UVAt(k.OriginX, k.OriginZ)
		uMax, vBottom := board.UVAt(k.OriginX+k.SizeX, k.OriginZ+k.SizeZ)
		k.UV = UVRect{
			UMin: clamp01(uMin),
			UMax: clamp01(uMax),
			VMin: clamp01(vBottom),
			VMax: clamp01(vTop),
		}
	}

	return board, nil
}

// MustBuild is like Build but panics on error. Intended for compiled-in
// layouts only.
func MustBuild(l *layout.Layout, dims Dimensions) *Board {
	b, err := Build(l, dims)
	if err != nil {
		panic(err)
	}
	return b
}

// clamp01 absorbs rounding residue at the board edges.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
