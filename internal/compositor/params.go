package compositor

// Params are the live photo adjustments. The input layer is expected to
// clamp them to its widget ranges before they get here; the compositor
// does not validate them beyond refusing to draw at a non-positive scale.
type Params struct {
	Zoom       float64 `json:"zoom"`       // Multiplier on the cover scale; 1 fills the atlas exactly
	OffsetX    float64 `json:"offset_x"`   // Draw center shift as a fraction of atlas width
	OffsetY    float64 `json:"offset_y"`   // Draw center shift as a fraction of atlas height
	Brightness float64 `json:"brightness"` // Percent, 100 = unchanged
	Contrast   float64 `json:"contrast"`   // Percent, 100 = unchanged
	Saturation float64 `json:"saturation"` // Percent, 100 = unchanged
	HueRotate  float64 `json:"hue_rotate"` // Degrees
}

// DefaultParams returns the neutral adjustment set.
func DefaultParams() Params {
	return Params{
		Zoom:       1,
		Brightness: 100,
		Contrast:   100,
		Saturation: 100,
	}
}

// Ranges used by the slider bindings. They are advisory: Repaint accepts
// anything, including zoom below the cover scale.
const (
	MinZoom       = 0.2
	MaxZoom       = 5.0
	MinOffset     = -0.5
	MaxOffset     = 0.5
	MinPercent    = 0.0
	MaxPercent    = 200.0
	MaxSaturation = 300.0
	MinHue        = -180.0
	MaxHue        = 180.0
)

// Clamp limits every field to its slider range.
func (p Params) Clamp() Params {
	p.Zoom = clamp(p.Zoom, MinZoom, MaxZoom)
	p.OffsetX = clamp(p.OffsetX, MinOffset, MaxOffset)
	p.OffsetY = clamp(p.OffsetY, MinOffset, MaxOffset)
	p.Brightness = clamp(p.Brightness, MinPercent, MaxPercent)
	p.Contrast = clamp(p.Contrast, MinPercent, MaxPercent)
	p.Saturation = clamp(p.Saturation, MinPercent, MaxSaturation)
	p.HueRotate = clamp(p.HueRotate, MinHue, MaxHue)
	return p
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
