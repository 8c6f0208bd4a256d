package layout

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsValidate(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			l := MustGet(name)
			require.NoError(t, l.Validate())
			assert.Equal(t, name, l.Name)
		})
	}
}

func TestBuiltinShapes(t *testing.T) {
	ext := Extended()
	assert.Len(t, ext.Rows, 6)
	assert.Equal(t, 74, ext.NumKeys())
	for i, row := range ext.Rows[1:] {
		assert.InDelta(t, 15, row.Units(), 1e-9, "row %d", i+1)
	}
	assert.Equal(t, "!\n1", ext.Rows[1][1].Label)

	cmp := Compact()
	assert.Len(t, cmp.Rows, 5)
	assert.Equal(t, 61, cmp.NumKeys())
	for _, row := range cmp.Rows {
		assert.InDelta(t, 15, row.Units(), 1e-9)
		for _, k := range row {
			assert.Empty(t, k.Label)
		}
	}
}

func TestGetReturnsFreshCopy(t *testing.T) {
	a := MustGet(NameCompact)
	a.Rows[0][0].Width = 9
	b := MustGet(NameCompact)
	assert.Equal(t, Width(1), b.Rows[0][0].Width)

	_, ok := Get("nope")
	assert.False(t, ok)
	assert.Panics(t, func() { MustGet("nope") })
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout *Layout
		row    int
		key    int
	}{
		{"no rows", &Layout{}, -1, -1},
		{"empty row", &Layout{Rows: []Row{Keys(1), {}}}, 1, -1},
		{"zero width", &Layout{Rows: []Row{Keys(1, 1, 0)}}, 0, 2},
		{"negative width", &Layout{Rows: []Row{Keys(1), Keys(-1.5)}}, 1, 0},
		{"nan width", &Layout{Rows: []Row{Keys(math.NaN())}}, 0, 0},
		{"inf width", &Layout{Rows: []Row{Keys(math.Inf(1))}}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLayout))

			var le *LayoutError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, tt.row, le.Row)
			assert.Equal(t, tt.key, le.Key)
		})
	}
}

func TestLayoutErrorMessage(t *testing.T) {
	err := &LayoutError{Layout: "mini", Row: 2, Key: 3, Reason: "width 0 must be positive"}
	assert.Equal(t, `layout "mini" row 2 key 3: width 0 must be positive`, err.Error())
}

func TestClone(t *testing.T) {
	l := Extended()
	c := l.Clone()
	c.Rows[0][0].Label = "changed"
	assert.Equal(t, "Esc", l.Rows[0][0].Label)
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		src    string
	}{
		{"json", FormatJSON, `{"name":"mini","rows":[[{"width":1,"label":"A"},{"width":"5/4"}],[{"width":2.75}]]}`},
		{"yaml", FormatYAML, "name: mini\nrows:\n  - - {width: 1, label: A}\n    - {width: 5/4}\n  - - {width: 2.75}\n"},
		{"toml", FormatTOML, "name = \"mini\"\nrows = [[{width = 1, label = \"A\"}, {width = \"5/4\"}], [{width = 2.75}]]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Decode(strings.NewReader(tt.src), tt.format)
			require.NoError(t, err)
			assert.Equal(t, "mini", l.Name)
			require.Len(t, l.Rows, 2)
			require.Len(t, l.Rows[0], 2)
			assert.Equal(t, "A", l.Rows[0][0].Label)
			assert.Equal(t, Width(1.25), l.Rows[0][1].Width)
			assert.Equal(t, Width(2.75), l.Rows[1][0].Width)
		})
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"rows":[[{"width":0}]]}`), FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidLayout)

	_, err = Decode(strings.NewReader(`{"rows":[[{"width":"wide"}]]}`), FormatJSON)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidLayout)
}

func TestLoadFillsName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "numpad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rows:\n  - - {width: 1}\n    - {width: 1}\n"), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "numpad", l.Name)

	_, err = Load(filepath.Join(dir, "layout.ini"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	l, err := Resolve(NameExtended)
	require.NoError(t, err)
	assert.Equal(t, NameExtended, l.Name)

	_, err = Resolve(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
