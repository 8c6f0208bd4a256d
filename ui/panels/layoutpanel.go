package panels

import (
	"fmt"
	"math"

	"keycap-atlas/internal/app"
	"keycap-atlas/internal/keycap"
	"keycap-atlas/internal/layout"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LayoutPanel selects a built-in layout and lists the keycaps of the
// current board.
type LayoutPanel struct {
	session *app.Session

	selector *widget.Select
	summary  *widget.Label
	list     *widget.List
	keycaps  []keycap.Keycap

	box *fyne.Container

	// OnError is called when a layout fails to build.
	OnError func(err error)
}

// NewLayoutPanel creates the panel. It follows EventLayoutChanged so
// layouts set elsewhere are reflected too.
func NewLayoutPanel(session *app.Session) *LayoutPanel {
	lp := &LayoutPanel{session: session}

	lp.selector = widget.NewSelect(layout.Names(), func(name string) {
		l, ok := layout.Get(name)
		if !ok {
			return
		}
		if _, err := session.SetLayout(l); err != nil && lp.OnError != nil {
			lp.OnError(err)
		}
	})
	lp.selector.PlaceHolder = "Choose a layout"

	lp.summary = widget.NewLabel("No layout")
	lp.list = widget.NewList(
		func() int { return len(lp.keycaps) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			k := lp.keycaps[id]
			label := k.Label
			if label == "" {
				label = "-"
			}
			obj.(*widget.Label).SetText(fmt.Sprintf("r%d c%d  %.2fu  u[%.3f,%.3f] v[%.3f,%.3f]  %s",
				k.Row, k.Column, k.Units, k.UV.UMin, k.UV.UMax, k.UV.VMin, k.UV.VMax, label))
		},
	)

	session.On(app.EventLayoutChanged, func(data interface{}) {
		if board, ok := data.(*keycap.Board); ok {
			lp.show(board)
		}
	})

	lp.box = container.NewBorder(
		container.NewVBox(
			widget.NewLabelWithStyle("Layout", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			lp.selector,
			lp.summary,
		),
		nil, nil, nil,
		lp.list,
	)
	if board := session.Board(); board != nil {
		lp.show(board)
	}
	return lp
}

// Container returns the panel widget.
func (lp *LayoutPanel) Container() fyne.CanvasObject {
	return lp.box
}

func (lp *LayoutPanel) show(board *keycap.Board) {
	lp.keycaps = board.Keycaps()
	rows, widest := 0, 0.0
	if l := lp.session.Layout(); l != nil {
		rows = len(l.Rows)
		for _, row := range l.Rows {
			widest = math.Max(widest, row.Units())
		}
	}
	lp.summary.SetText(fmt.Sprintf("%s: %d rows, %d keys, widest row %.2fu, %.3f x %.3f",
		board.Name, rows, board.Len(), widest, board.Bounds.Width, board.Bounds.Height))
	lp.list.Refresh()
}
