// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"keycap-atlas/internal/app"
	srcimage "keycap-atlas/internal/image"
	"keycap-atlas/internal/keycap"
	"keycap-atlas/internal/layout"
	"keycap-atlas/internal/version"
	"keycap-atlas/ui/canvas"
	"keycap-atlas/ui/panels"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	appTitle       = "Keycap Atlas"
	prefKeyLastDir = "lastDirectory"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app         fyne.App
	session     *app.Session
	view        *canvas.AtlasView
	adjust      *panels.AdjustPanel
	layoutPanel *panels.LayoutPanel
	statusBar   *widget.Label

	// Menu items that need state tracking
	atlasItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, session *app.Session) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window:  win,
		app:     fyneApp,
		session: session,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.view = canvas.NewAtlasView(mw.session)
	mw.adjust = panels.NewAdjustPanel(mw.session)
	mw.layoutPanel = panels.NewLayoutPanel(mw.session)
	mw.layoutPanel.OnError = func(err error) { dialog.ShowError(err, mw.Window) }

	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()

	viewArea := container.NewBorder(
		toolbar,             // top
		nil,                 // bottom
		nil,                 // left
		nil,                 // right
		mw.view.Container(), // center
	)

	side := container.NewVSplit(mw.adjust.Container(), mw.layoutPanel.Container())
	side.SetOffset(0.45)

	split := container.NewHSplit(side, viewArea)
	split.SetOffset(0.3)

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1280, 720))
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewButton("Open Image...", mw.onOpenImage),
		widget.NewButton("Clear", mw.session.OnClearImage),
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		widget.NewButton("-", mw.view.ZoomOut),
		widget.NewButton("+", mw.view.ZoomIn),
		widget.NewButton("1:1", func() { mw.view.SetZoom(1) }),
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItem("Clear Image", mw.session.OnClearImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Layout...", mw.onOpenLayout),
	)

	mw.atlasItem = fyne.NewMenuItem("Show Atlas", mw.onToggleAtlas)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.view.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.view.ZoomOut),
		fyne.NewMenuItem("Actual Size", func() { mw.view.SetZoom(1) }),
		fyne.NewMenuItemSeparator(),
		mw.atlasItem,
	)

	var layoutItems []*fyne.MenuItem
	for _, name := range layout.Names() {
		name := name
		layoutItems = append(layoutItems, fyne.NewMenuItem(name, func() { mw.onSelectLayout(name) }))
	}
	layoutMenu := fyne.NewMenu("Layout", layoutItems...)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, layoutMenu, helpMenu))
}

// setupEventHandlers registers for session events.
func (mw *MainWindow) setupEventHandlers() {
	mw.session.On(app.EventLayoutChanged, func(data interface{}) {
		if board, ok := data.(*keycap.Board); ok {
			mw.SetTitle(appTitle + " - " + board.Name)
			mw.updateStatus(fmt.Sprintf("Layout %s: %d keycaps", board.Name, board.Len()))
			mw.view.MarkDirty()
		}
	})

	mw.session.On(app.EventImageLoaded, func(data interface{}) {
		if src, ok := data.(*srcimage.Source); ok {
			name := "upload"
			if src.Path != "" {
				name = filepath.Base(src.Path)
			}
			mw.updateStatus(fmt.Sprintf("Image loaded: %s (%dx%d %s)",
				name, src.Width(), src.Height(), src.Format))
		}
	})

	mw.session.On(app.EventImageRejected, func(data interface{}) {
		if err, ok := data.(error); ok {
			mw.updateStatus("Image rejected: " + err.Error())
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.app.Preferences().SetString(prefKeyLastDir, filepath.Dir(filePath))
}

// Menu action handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		mw.saveLastDir(reader.URI().Path())
		if err := mw.session.LoadImage(reader); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(srcimage.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onOpenLayout() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.LoadLayout(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json", ".yaml", ".yml", ".toml"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// LoadLayout resolves a built-in name or a layout file and makes it the
// current board.
func (mw *MainWindow) LoadLayout(nameOrPath string) error {
	l, err := layout.Resolve(nameOrPath)
	if err != nil {
		return err
	}
	_, err = mw.session.SetLayout(l)
	return err
}

func (mw *MainWindow) onSelectLayout(name string) {
	if err := mw.LoadLayout(name); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onToggleAtlas() {
	if mw.view.Mode() == canvas.ModeAtlas {
		mw.view.SetMode(canvas.ModeBoard)
		mw.atlasItem.Checked = false
	} else {
		mw.view.SetMode(canvas.ModeAtlas)
		mw.atlasItem.Checked = true
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s\n\n"+
			"Lays out a keyboard's keycaps and paints one photo across them.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.String(), version.BuildTime, version.GitCommit),
		mw.Window)
}
