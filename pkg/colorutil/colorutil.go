// Package colorutil provides shared color utilities: named colors and the
// brightness/contrast/saturate/hue-rotate filter chain applied to photos
// before they land in the keycap atlas.
package colorutil

import (
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Common colors used throughout the application.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	// AtlasFill is the flat fill shown on keycap tops when no photo is loaded.
	AtlasFill = color.RGBA{R: 0xE6, G: 0xE6, B: 0xE6, A: 255}

	// KeycapSide is the plastic color of the non-textured keycap faces.
	KeycapSide = color.RGBA{R: 0x2B, G: 0x2B, B: 0x2B, A: 255}
)

// Luminance weights shared by the saturate and hue-rotate matrices.
const (
	lumR = 0.213
	lumG = 0.715
	lumB = 0.072
)

// homogeneous wraps a 3x3 linear part and a translation into a 4x4 matrix
// acting on (r, g, b, 1) column vectors.
func homogeneous(m [3][3]float64, offset [3]float64) *mat.Dense {
	d := mat.NewDense(4, 4, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d.Set(i, j, m[i][j])
		}
		d.Set(i, 3, offset[i])
	}
	d.Set(3, 3, 1)
	return d
}

// BrightnessMatrix scales each channel by percent/100.
func BrightnessMatrix(percent float64) *mat.Dense {
	b := percent / 100
	return homogeneous([3][3]float64{{b, 0, 0}, {0, b, 0}, {0, 0, b}}, [3]float64{})
}

// ContrastMatrix scales each channel about mid-gray by percent/100.
func ContrastMatrix(percent float64) *mat.Dense {
	c := percent / 100
	o := 0.5 - 0.5*c
	return homogeneous([3][3]float64{{c, 0, 0}, {0, c, 0}, {0, 0, c}}, [3]float64{o, o, o})
}

// SaturateMatrix blends each pixel toward its luminance. 100 is identity,
// 0 is grayscale, values above 100 oversaturate.
func SaturateMatrix(percent float64) *mat.Dense {
	s := percent / 100
	return homogeneous([3][3]float64{
		{lumR + (1-lumR)*s, lumG - lumG*s, lumB - lumB*s},
		{lumR - lumR*s, lumG + (1-lumG)*s, lumB - lumB*s},
		{lumR - lumR*s, lumG - lumG*s, lumB + (1-lumB)*s},
	}, [3]float64{})
}

// HueRotateMatrix rotates hue by the given angle in degrees while
// approximately preserving luminance.
func HueRotateMatrix(degrees float64) *mat.Dense {
	rad := degrees * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return homogeneous([3][3]float64{
		{lumR + c*(1-lumR) - s*lumR, lumG - c*lumG - s*lumG, lumB - c*lumB + s*(1-lumB)},
		{lumR - c*lumR + s*0.143, lumG + c*(1-lumG) + s*0.140, lumB - c*lumB - s*0.283},
		{lumR - c*lumR - s*(1-lumR), lumG - c*lumG + s*lumG, lumB + c*(1-lumB) + s*lumB},
	}, [3]float64{})
}

// stage is the top three rows of a homogeneous color matrix, flattened for
// the per-pixel loop.
type stage [3][4]float64

func stageOf(m *mat.Dense) stage {
	var st stage
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			st[i][j] = m.At(i, j)
		}
	}
	return st
}

// Filter is an ordered chain of color matrices. Channels are clamped to
// [0, 1] after every stage, so the chain is not equivalent to the product
// of its matrices once any stage saturates.
type Filter struct {
	stages []stage
}

// NewFilter builds the chain brightness -> contrast -> saturate -> hue-rotate.
// Percentages use 100 as identity; hue is in degrees. Identity stages are
// left out so the default parameters leave pixels bit-exact.
func NewFilter(brightness, contrast, saturation, hueDegrees float64) *Filter {
	f := &Filter{}
	if brightness != 100 {
		f.stages = append(f.stages, stageOf(BrightnessMatrix(brightness)))
	}
	if contrast != 100 {
		f.stages = append(f.stages, stageOf(ContrastMatrix(contrast)))
	}
	if saturation != 100 {
		f.stages = append(f.stages, stageOf(SaturateMatrix(saturation)))
	}
	if math.Mod(hueDegrees, 360) != 0 {
		f.stages = append(f.stages, stageOf(HueRotateMatrix(hueDegrees)))
	}
	return f
}

// Identity reports whether the filter leaves colors unchanged.
func (f *Filter) Identity() bool {
	return len(f.stages) == 0
}

// Apply filters one color with channels in [0, 1].
func (f *Filter) Apply(r, g, b float64) (float64, float64, float64) {
	for _, st := range f.stages {
		nr := st[0][0]*r + st[0][1]*g + st[0][2]*b + st[0][3]
		ng := st[1][0]*r + st[1][1]*g + st[1][2]*b + st[1][3]
		nb := st[2][0]*r + st[2][1]*g + st[2][2]*b + st[2][3]
		r, g, b = clamp01(nr), clamp01(ng), clamp01(nb)
	}
	return r, g, b
}

// ApplyRGBA filters img in place. Pixels are unpremultiplied before the
// chain runs and premultiplied again afterwards; fully transparent pixels
// are skipped.
func (f *Filter) ApplyRGBA(img *image.RGBA) {
	if f.Identity() {
		return
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i+3 < len(row); i += 4 {
			a := row[i+3]
			if a == 0 {
				continue
			}
			af := float64(a) / 255
			r := float64(row[i]) / 255 / af
			g := float64(row[i+1]) / 255 / af
			bl := float64(row[i+2]) / 255 / af
			r, g, bl = f.Apply(clamp01(r), clamp01(g), clamp01(bl))
			row[i] = to8(r * af)
			row[i+1] = to8(g * af)
			row[i+2] = to8(bl * af)
		}
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func to8(x float64) uint8 {
	return uint8(math.Round(clamp01(x) * 255))
}
