// Package overlay places legend billboards above labelled keys. Billboards
// are independent of the atlas: they sit on top of the textured face.
package overlay

import (
	"strings"

	"keycap-atlas/internal/keycap"
	"keycap-atlas/pkg/geometry"
)

// Style controls where legends sit on a key, in world units.
type Style struct {
	InsetX    float64 `json:"inset_x"`    // Distance from the key's left edge to the text anchor
	InsetZ    float64 `json:"inset_z"`    // Distance from the key's back edge to the first line
	Lift      float64 `json:"lift"`       // Height above the top face
	LinePitch float64 `json:"line_pitch"` // Spacing between stacked lines
	TextSize  float64 `json:"text_size"`  // World height of one line of text
}

// DefaultStyle returns legend placement for 1u = 1 world unit boards.
func DefaultStyle() Style {
	return Style{
		InsetX:    0.22,
		InsetZ:    0.25,
		Lift:      0.01,
		LinePitch: 0.3,
		TextSize:  0.2,
	}
}

// Billboard is one line of legend text anchored in world space.
type Billboard struct {
	Key      int              `json:"key"`  // Keycap index
	Line     int              `json:"line"` // Zero-based line within the legend
	Text     string           `json:"text"`
	Position geometry.Point3D `json:"position"`
}

// Lines splits a legend on line breaks. Blank lines keep their slot so
// that "\nA" puts A on the second line.
func Lines(label string) []string {
	if label == "" {
		return nil
	}
	label = strings.ReplaceAll(label, "\r\n", "\n")
	return strings.Split(label, "\n")
}

// Build returns one billboard per non-empty legend line. Keys with empty
// labels get none.
func Build(board *keycap.Board, style Style) []Billboard {
	var out []Billboard
	for _, k := range board.Keycaps() {
		lines := Lines(k.Label)
		if len(lines) == 0 {
			continue
		}
		c := board.Center(k)
		anchor := geometry.Point3D{
			X: c.X - k.SizeX/2 + style.InsetX,
			Y: c.Y + style.Lift,
			Z: c.Z - k.SizeZ/2 + style.InsetZ,
		}
		for i, line := range lines {
			if line == "" {
				continue
			}
			out = append(out, Billboard{
				Key:      k.Index,
				Line:     i,
				Text:     line,
				Position: anchor.Add(geometry.Point3D{Z: float64(i) * style.LinePitch}),
			})
		}
	}
	return out
}
