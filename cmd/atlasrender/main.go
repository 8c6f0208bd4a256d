// Command atlasrender paints a photo onto a keycap atlas and writes the
// atlas, a top-down board preview and the keycap records to disk.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"keycap-atlas/internal/app"
	"keycap-atlas/internal/atlas"
	"keycap-atlas/internal/compositor"
	"keycap-atlas/internal/keycap"
	"keycap-atlas/internal/layout"
	"keycap-atlas/internal/render"
	"keycap-atlas/internal/version"
	"keycap-atlas/pkg/colorutil"
)

type keycapDump struct {
	Name       string            `json:"name"`
	Dimensions keycap.Dimensions `json:"dimensions"`
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Keycaps    []keycap.Keycap   `json:"keycaps"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	defaults := compositor.DefaultParams()
	layoutArg := flag.String("layout", layout.NameExtended, "built-in layout name or layout file (.json, .yaml, .toml)")
	imagePath := flag.String("image", "", "photo to paint (PNG, JPEG, GIF, BMP, TIFF or WebP)")
	width := flag.Int("width", atlas.DefaultWidth, "atlas width in pixels")
	height := flag.Int("height", atlas.DefaultHeight, "atlas height in pixels")
	zoom := flag.Float64("zoom", defaults.Zoom, "zoom multiplier on the cover scale")
	offsetX := flag.Float64("offset-x", defaults.OffsetX, "horizontal shift as a fraction of atlas width")
	offsetY := flag.Float64("offset-y", defaults.OffsetY, "vertical shift as a fraction of atlas height")
	brightness := flag.Float64("brightness", defaults.Brightness, "brightness percent")
	contrast := flag.Float64("contrast", defaults.Contrast, "contrast percent")
	saturation := flag.Float64("saturation", defaults.Saturation, "saturation percent")
	hue := flag.Float64("hue", defaults.HueRotate, "hue rotation in degrees")
	outPath := flag.String("out", "atlas.png", "atlas PNG output path")
	previewPath := flag.String("preview", "", "top-view PNG output path (optional)")
	ppu := flag.Float64("ppu", 64, "preview pixels per key unit")
	keycapsPath := flag.String("keycaps", "", "keycap JSON output path (optional, - for stdout)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	l, err := layout.Resolve(*layoutArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load layout: %v\n", err)
		os.Exit(1)
	}

	cfg := app.DefaultConfig()
	cfg.AtlasWidth, cfg.AtlasHeight = *width, *height
	session, err := app.NewSession(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create session: %v\n", err)
		os.Exit(1)
	}

	board, err := session.SetLayout(l)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build layout: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Layout %q: %d keycaps, board %.3f x %.3f units\n",
		board.Name, board.Len(), board.Bounds.Width, board.Bounds.Height)

	params := compositor.Params{
		Zoom:       *zoom,
		OffsetX:    *offsetX,
		OffsetY:    *offsetY,
		Brightness: *brightness,
		Contrast:   *contrast,
		Saturation: *saturation,
		HueRotate:  *hue,
	}.Clamp()

	if *imagePath != "" {
		if err := session.LoadImageFile(*imagePath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
			os.Exit(1)
		}
		src := session.Source()
		fmt.Printf("Loaded %s image: %dx%d pixels\n", src.Format, src.Width(), src.Height())
	}
	session.OnParamsChanged(params)

	if err := writePNG(*outPath, session.Surface().Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write atlas: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote atlas %dx%d to %s\n", *width, *height, *outPath)

	if *previewPath != "" {
		top, err := render.TopView(board, session.Surface(), *ppu, colorutil.KeycapSide)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render preview: %v\n", err)
			os.Exit(1)
		}
		if err := writePNG(*previewPath, top); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write preview: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote preview %dx%d to %s\n", top.Bounds().Dx(), top.Bounds().Dy(), *previewPath)
	}

	if *keycapsPath != "" {
		if err := writeKeycaps(*keycapsPath, board); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write keycaps: %v\n", err)
			os.Exit(1)
		}
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

func writeKeycaps(path string, board *keycap.Board) error {
	dump := keycapDump{
		Name:       board.Name,
		Dimensions: board.Dimensions,
		Width:      board.Bounds.Width,
		Height:     board.Bounds.Height,
		Keycaps:    board.Keycaps(),
	}

	out := os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(dump)
}
