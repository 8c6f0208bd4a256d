// Package main provides the entry point for the Keycap Atlas viewer.
package main

import (
	"flag"
	"log"
	"os"

	"keycap-atlas/internal/app"
	"keycap-atlas/internal/layout"
	"keycap-atlas/internal/version"
	"keycap-atlas/ui/mainwindow"

	fyneapp "fyne.io/fyne/v2/app"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	imagePath := flag.String("image", "", "photo to paint onto the atlas")
	watch := flag.Bool("watch", true, "reload the layout file when it changes")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		log.SetFlags(0)
		log.Println(version.String())
		return
	}
	log.Printf("Starting %s", version.String())

	layoutArg := layout.NameExtended
	if flag.NArg() > 0 {
		layoutArg = flag.Arg(0)
	}

	session, err := app.NewSession(app.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	fyneApp := fyneapp.NewWithID("io.github.keycap-atlas")
	fyneApp.Settings().SetTheme(&app.KeycapTheme{})

	win := mainwindow.New(fyneApp, session)

	if err := win.LoadLayout(layoutArg); err != nil {
		log.Printf("Failed to load layout %s: %v", layoutArg, err)
		if err := win.LoadLayout(layout.NameExtended); err != nil {
			log.Fatalf("Failed to load built-in layout: %v", err)
		}
	}

	if *imagePath != "" {
		if err := session.LoadImageFile(*imagePath); err != nil {
			log.Printf("Failed to load image %s: %v", *imagePath, err)
		}
	}

	if *watch {
		if watcher := setupLayoutWatcher(win, layoutArg); watcher != nil {
			defer watcher.Stop()
		}
	}

	win.ShowAndRun()
}

// setupLayoutWatcher reloads the layout whenever its file is saved. Built-in
// layout names are not watched.
func setupLayoutWatcher(win *mainwindow.MainWindow, layoutArg string) *app.LayoutWatcher {
	if _, builtin := layout.Get(layoutArg); builtin {
		return nil
	}
	if _, err := os.Stat(layoutArg); err != nil {
		return nil
	}

	watcher, err := app.NewLayoutWatcher(layoutArg, func(path string) {
		if err := win.LoadLayout(path); err != nil {
			log.Printf("Layout reload: %v", err)
		}
	})
	if err != nil {
		log.Printf("Layout reload: %v", err)
		return nil
	}
	if err := watcher.Start(); err != nil {
		log.Printf("Layout reload: %v", err)
		return nil
	}
	return watcher
}
