// Package layout provides declarative keyboard layout tables: rows of keys
// measured in key units, with optional legends.
package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidLayout is matched by every *LayoutError via errors.Is.
var ErrInvalidLayout = errors.New("invalid keyboard layout")

// LayoutError describes a malformed layout table. Row and Key are zero-based
// and set to -1 when the fault is not attached to a particular row or key.
type LayoutError struct {
	Layout string
	Row    int
	Key    int
	Reason string
}

func (e *LayoutError) Error() string {
	var b strings.Builder
	b.WriteString("layout")
	if e.Layout != "" {
		fmt.Fprintf(&b, " %q", e.Layout)
	}
	if e.Row >= 0 {
		fmt.Fprintf(&b, " row %d", e.Row)
	}
	if e.Key >= 0 {
		fmt.Fprintf(&b, " key %d", e.Key)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

func (e *LayoutError) Unwrap() error {
	return ErrInvalidLayout
}

// KeySpec is one key in a row. Width is in key units (1 = a standard
// alphanumeric key); Label may hold several lines separated by "\n".
type KeySpec struct {
	Width Width  `json:"width" yaml:"width" toml:"width"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
}

// Row is an ordered left-to-right sequence of keys.
type Row []KeySpec

// Units returns the summed key widths of the row.
func (r Row) Units() float64 {
	var sum float64
	for _, k := range r {
		sum += float64(k.Width)
	}
	return sum
}

// Layout is an ordered top-to-bottom sequence of rows.
type Layout struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Rows []Row  `json:"rows" yaml:"rows" toml:"rows"`
}

// Validate checks the table invariants: at least one row, at least one key
// per row and a finite positive width on every key.
func (l *Layout) Validate() error {
	if len(l.Rows) == 0 {
		return &LayoutError{Layout: l.Name, Row: -1, Key: -1, Reason: "no rows"}
	}
	for i, row := range l.Rows {
		if len(row) == 0 {
			return &LayoutError{Layout: l.Name, Row: i, Key: -1, Reason: "row has no keys"}
		}
		for j, k := range row {
			w := float64(k.Width)
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return &LayoutError{Layout: l.Name, Row: i, Key: j, Reason: fmt.Sprintf("width %v is not finite", w)}
			}
			if w <= 0 {
				return &LayoutError{Layout: l.Name, Row: i, Key: j, Reason: fmt.Sprintf("width %v must be positive", w)}
			}
		}
	}
	return nil
}

// NumKeys returns the total number of keys across all rows.
func (l *Layout) NumKeys() int {
	n := 0
	for _, row := range l.Rows {
		n += len(row)
	}
	return n
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() *Layout {
	out := &Layout{Name: l.Name, Rows: make([]Row, len(l.Rows))}
	for i, row := range l.Rows {
		out.Rows[i] = append(Row(nil), row...)
	}
	return out
}

// Key is shorthand for a labelled key.
func Key(width float64, label string) KeySpec {
	return KeySpec{Width: Width(width), Label: label}
}

// Keys returns unlabelled keys of the given widths.
func Keys(widths ...float64) Row {
	row := make(Row, len(widths))
	for i, w := range widths {
		row[i] = KeySpec{Width: Width(w)}
	}
	return row
}

// Labelled returns one-unit keys carrying the given labels.
func Labelled(labels ...string) Row {
	row := make(Row, len(labels))
	for i, s := range labels {
		row[i] = Key(1, s)
	}
	return row
}
