package layout

import (
	"fmt"
	"sort"
)

// Built-in layout names.
const (
	NameExtended = "ANSI 60% + F-row"
	NameCompact  = "ANSI 60% compact"
)

// Extended returns an ANSI 60% block topped by an escape/function row, with
// legends. Shifted symbols sit above their base character on two lines.
func Extended() *Layout {
	fn := Row{Key(1, "Esc")}
	for i := 1; i <= 12; i++ {
		fn = append(fn, Key(1, fmt.Sprintf("F%d", i)))
	}

	number := Labelled("~\n`", "!\n1", "@\n2", "#\n3", "$\n4", "%\n5", "^\n6",
		"&\n7", "*\n8", "(\n9", ")\n0", "_\n-", "+\n=")
	number = append(number, Key(2, "Backspace"))

	top := Row{Key(1.5, "Tab")}
	top = append(top, Labelled("Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P", "{\n[", "}\n]")...)
	top = append(top, Key(1.5, "|\n\\"))

	home := Row{Key(1.75, "Caps")}
	home = append(home, Labelled("A", "S", "D", "F", "G", "H", "J", "K", "L", ":\n;", "\"\n'")...)
	home = append(home, Key(2.25, "Enter"))

	bottom := Row{Key(2.25, "Shift")}
	bottom = append(bottom, Labelled("Z", "X", "C", "V", "B", "N", "M", "<\n,", ">\n.", "?\n/")...)
	bottom = append(bottom, Key(2.75, "Shift"))

	space := Row{
		Key(1.25, "Ctrl"), Key(1.25, "Win"), Key(1.25, "Alt"),
		Key(6.25, ""),
		Key(1.25, "Alt"), Key(1.25, "Win"), Key(1.25, "Menu"), Key(1.25, "Ctrl"),
	}

	return &Layout{
		Name: NameExtended,
		Rows: []Row{fn, number, top, home, bottom, space},
	}
}

// Compact returns the same ANSI 60% alphanumeric block without legends or a
// function row.
func Compact() *Layout {
	return &Layout{
		Name: NameCompact,
		Rows: []Row{
			append(Keys(1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1), Keys(2)...),
			append(append(Keys(1.5), Keys(1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1)...), Keys(1.5)...),
			append(append(Keys(1.75), Keys(1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1)...), Keys(2.25)...),
			append(append(Keys(2.25), Keys(1, 1, 1, 1, 1, 1, 1, 1, 1, 1)...), Keys(2.75)...),
			Keys(1.25, 1.25, 1.25, 6.25, 1.25, 1.25, 1.25, 1.25),
		},
	}
}

// Registry of built-in layouts. Entries are constructors so callers always
// receive a fresh copy they may modify.
var registry = map[string]func() *Layout{
	NameExtended: Extended,
	NameCompact:  Compact,
}

// Get returns a fresh copy of a built-in layout by name.
func Get(name string) (*Layout, bool) {
	fn, ok := registry[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// MustGet is like Get but panics for unknown names. Intended for
// compiled-in names only.
func MustGet(name string) *Layout {
	l, ok := Get(name)
	if !ok {
		panic(fmt.Sprintf("layout: unknown built-in %q", name))
	}
	return l
}

// Names returns all built-in layout names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
