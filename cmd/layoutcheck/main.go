// Command layoutcheck validates layout tables and prints the keycap
// geometry and UV rectangles they produce.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"keycap-atlas/internal/keycap"
	"keycap-atlas/internal/layout"
)

func main() {
	unit := flag.Float64("unit", keycap.DefaultDimensions().Unit, "key unit size")
	gap := flag.Float64("gap", keycap.DefaultDimensions().Gap, "gap between keys")
	keyHeight := flag.Float64("height", keycap.DefaultDimensions().KeyHeight, "keycap height")
	quiet := flag.Bool("q", false, "only report validity")
	list := flag.Bool("list", false, "list built-in layouts and exit")
	flag.Parse()

	if *list {
		for _, name := range layout.Names() {
			l := layout.MustGet(name)
			fmt.Printf("%-24s %d rows, %d keys\n", name, len(l.Rows), l.NumKeys())
		}
		return
	}

	if flag.NArg() == 0 {
		fmt.Println("Usage: layoutcheck [-unit 1] [-gap 0.15] [-height 0.5] [-q] <layout name or file>...")
		os.Exit(1)
	}

	dims := keycap.Dimensions{Unit: *unit, Gap: *gap, KeyHeight: *keyHeight}
	failed := false
	for _, arg := range flag.Args() {
		if err := check(arg, dims, *quiet); err != nil {
			failed = true
			var le *layout.LayoutError
			if errors.As(err, &le) {
				fmt.Fprintf(os.Stderr, "%s: invalid: %v\n", arg, le)
			} else {
				fmt.Fprintf(os.Stderr, "%s: %v\n", arg, err)
			}
		}
	}
	if failed {
		os.Exit(1)
	}
}

func check(arg string, dims keycap.Dimensions, quiet bool) error {
	l, err := layout.Resolve(arg)
	if err != nil {
		return err
	}
	board, err := keycap.Build(l, dims)
	if err != nil {
		return err
	}

	fmt.Printf("%s: ok, %d rows, %d keys, board %.3f x %.3f\n",
		board.Name, len(l.Rows), board.Len(), board.Bounds.Width, board.Bounds.Height)
	if quiet {
		return nil
	}

	for i, row := range l.Rows {
		fmt.Printf("  row %d: %2d keys, %6.2fu\n", i, len(row), row.Units())
	}

	fmt.Printf("%4s %3s %3s %6s %8s %8s %8s %8s %8s %8s  %s\n",
		"Idx", "Row", "Col", "Units", "X", "Z", "uMin", "uMax", "vMin", "vMax", "Label")
	fmt.Println(strings.Repeat("-", 96))
	for _, k := range board.Keycaps() {
		fmt.Printf("%4d %3d %3d %6.2f %8.3f %8.3f %8.4f %8.4f %8.4f %8.4f  %s\n",
			k.Index, k.Row, k.Column, k.Units, k.OriginX, k.OriginZ,
			k.UV.UMin, k.UV.UMax, k.UV.VMin, k.UV.VMax, strings.ReplaceAll(k.Label, "\n", " "))
	}
	fmt.Println()
	return nil
}
