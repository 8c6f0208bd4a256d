// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"image"
	"math"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point3D is a position in world space. Y is up; the board lies in the XZ plane.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the sum of two points.
func (p Point3D) Add(other Point3D) Point3D {
	return Point3D{X: p.X + other.X, Y: p.Y + other.Y, Z: p.Z + other.Z}
}

// Size is a width/height extent.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Aspect returns Width/Height, or 0 for a degenerate size.
func (s Size) Aspect() float64 {
	if s.Height == 0 {
		return 0
	}
	return s.Width / s.Height
}

// Empty reports whether either dimension is zero or negative.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle given by its minimum corner and its
// extent. A negative extent runs the rectangle backwards along that axis,
// which is how a v-flipped texture span is written.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Scaled multiplies every coordinate by f.
func (r Rect) Scaled(f float64) Rect {
	return Rect{X: r.X * f, Y: r.Y * f, Width: r.Width * f, Height: r.Height * f}
}

// Lerp returns the point a fraction fx of the way across and fy of the way
// down the rectangle, measured from its (X, Y) corner.
func (r Rect) Lerp(fx, fy float64) Point2D {
	return Point2D{X: r.X + r.Width*fx, Y: r.Y + r.Height*fy}
}

// Pixels rounds each edge to the nearest integer. Rectangles that share an
// edge in float space share it in pixel space, so tiles never overlap or
// leave a seam.
func (r Rect) Pixels() image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X+r.Width)), int(math.Round(r.Y+r.Height)),
	)
}

// AffineTransform represents a 2x3 affine transformation matrix.
// [a b tx]
// [c d ty]
type AffineTransform struct {
	A, B, TX float64
	C, D, TY float64
}

// Identity returns the identity transform.
func Identity() AffineTransform {
	return AffineTransform{A: 1, D: 1}
}

// ScaleAbout returns a uniform scale by s that maps the point from onto to.
// Used to place a scaled image so that its center lands on a target point.
func ScaleAbout(s float64, from, to Point2D) AffineTransform {
	return AffineTransform{
		A: s, B: 0, TX: to.X - s*from.X,
		C: 0, D: s, TY: to.Y - s*from.Y,
	}
}

// Apply transforms a point.
func (t AffineTransform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// Determinant returns the determinant of the linear part.
func (t AffineTransform) Determinant() float64 {
	return t.A*t.D - t.B*t.C
}

// Invertible reports whether the transform has a finite, non-zero determinant.
func (t AffineTransform) Invertible() bool {
	det := t.Determinant()
	return det != 0 && !math.IsNaN(det) && !math.IsInf(det, 0)
}

// Aff3 returns the transform as the six-element row-major array used by
// golang.org/x/image/math/f64.
func (t AffineTransform) Aff3() [6]float64 {
	return [6]float64{t.A, t.B, t.TX, t.C, t.D, t.TY}
}
