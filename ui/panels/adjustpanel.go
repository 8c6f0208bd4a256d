// Package panels provides the side panels of the main window.
package panels

import (
	"fmt"

	"keycap-atlas/internal/app"
	"keycap-atlas/internal/compositor"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// AdjustPanel holds the photo adjustment sliders. Every change calls
// Session.OnParamsChanged with the clamped parameter set.
type AdjustPanel struct {
	session *app.Session
	params  compositor.Params

	sliders []*paramSlider
	box     *fyne.Container

	// updating suppresses repaints while Reset moves the sliders
	updating bool
}

type paramSlider struct {
	slider *widget.Slider
	value  *widget.Label
	format string
	field  func(p *compositor.Params) *float64
}

// NewAdjustPanel creates the panel with sliders at the session's current
// parameters.
func NewAdjustPanel(session *app.Session) *AdjustPanel {
	ap := &AdjustPanel{
		session: session,
		params:  session.Params(),
	}

	form := container.NewVBox()
	add := func(name string, min, max, step float64, format string, field func(p *compositor.Params) *float64) {
		ps := &paramSlider{
			slider: widget.NewSlider(min, max),
			value:  widget.NewLabel(""),
			format: format,
			field:  field,
		}
		ps.slider.Step = step
		ps.slider.SetValue(*field(&ap.params))
		ps.value.SetText(fmt.Sprintf(format, ps.slider.Value))
		ps.slider.OnChanged = func(v float64) {
			ps.value.SetText(fmt.Sprintf(format, v))
			*field(&ap.params) = v
			ap.apply()
		}
		ap.sliders = append(ap.sliders, ps)
		form.Add(container.NewBorder(nil, nil, widget.NewLabel(name), ps.value, ps.slider))
	}

	add("Zoom", compositor.MinZoom, compositor.MaxZoom, 0.01, "%.2fx",
		func(p *compositor.Params) *float64 { return &p.Zoom })
	add("Offset X", compositor.MinOffset, compositor.MaxOffset, 0.005, "%+.3f",
		func(p *compositor.Params) *float64 { return &p.OffsetX })
	add("Offset Y", compositor.MinOffset, compositor.MaxOffset, 0.005, "%+.3f",
		func(p *compositor.Params) *float64 { return &p.OffsetY })
	add("Brightness", compositor.MinPercent, compositor.MaxPercent, 1, "%.0f%%",
		func(p *compositor.Params) *float64 { return &p.Brightness })
	add("Contrast", compositor.MinPercent, compositor.MaxPercent, 1, "%.0f%%",
		func(p *compositor.Params) *float64 { return &p.Contrast })
	add("Saturation", compositor.MinPercent, compositor.MaxSaturation, 1, "%.0f%%",
		func(p *compositor.Params) *float64 { return &p.Saturation })
	add("Hue", compositor.MinHue, compositor.MaxHue, 1, "%+.0f°",
		func(p *compositor.Params) *float64 { return &p.HueRotate })

	resetBtn := widget.NewButton("Reset", ap.Reset)
	clearBtn := widget.NewButton("Clear Image", session.OnClearImage)

	ap.box = container.NewVBox(
		widget.NewLabelWithStyle("Adjust", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		container.NewGridWithColumns(2, resetBtn, clearBtn),
	)
	return ap
}

// Container returns the panel widget.
func (ap *AdjustPanel) Container() fyne.CanvasObject {
	return ap.box
}

// Params returns the parameters the sliders currently show.
func (ap *AdjustPanel) Params() compositor.Params {
	return ap.params
}

// Reset moves every slider back to neutral and repaints once.
func (ap *AdjustPanel) Reset() {
	ap.updating = true
	ap.params = compositor.DefaultParams()
	for _, ps := range ap.sliders {
		ps.slider.SetValue(*ps.field(&ap.params))
	}
	ap.updating = false
	ap.apply()
}

func (ap *AdjustPanel) apply() {
	if ap.updating {
		return
	}
	ap.params = ap.params.Clamp()
	ap.session.OnParamsChanged(ap.params)
}
