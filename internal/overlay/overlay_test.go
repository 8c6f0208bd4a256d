package overlay

import (
	"testing"

	"keycap-atlas/internal/keycap"
	"keycap-atlas/internal/layout"
	"keycap-atlas/pkg/colorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	assert.Nil(t, Lines(""))
	assert.Equal(t, []string{"Esc"}, Lines("Esc"))
	assert.Equal(t, []string{"!", "1"}, Lines("!\n1"))
	assert.Equal(t, []string{"", "A"}, Lines("\r\nA"))
}

func TestBuildSkipsEmptyLabels(t *testing.T) {
	board := keycap.MustBuild(layout.Compact(), keycap.DefaultDimensions())
	assert.Empty(t, Build(board, DefaultStyle()))
}

func TestBuildStacksLines(t *testing.T) {
	l := &layout.Layout{Rows: []layout.Row{{
		layout.Key(1, "!\n1"),
		layout.Key(1, ""),
		layout.Key(1.5, "Tab"),
	}}}
	board := keycap.MustBuild(l, keycap.DefaultDimensions())
	style := DefaultStyle()
	bb := Build(board, style)
	require.Len(t, bb, 3)

	assert.Equal(t, 0, bb[0].Key)
	assert.Equal(t, "!", bb[0].Text)
	assert.Equal(t, "1", bb[1].Text)
	assert.Equal(t, 1, bb[1].Line)
	assert.InDelta(t, style.LinePitch, bb[1].Position.Z-bb[0].Position.Z, 1e-12)
	assert.Equal(t, bb[0].Position.X, bb[1].Position.X)

	// the unlabelled middle key is skipped
	assert.Equal(t, 2, bb[2].Key)
	assert.Equal(t, "Tab", bb[2].Text)
}

func TestBillboardSitsOnKey(t *testing.T) {
	board := keycap.MustBuild(layout.Extended(), keycap.DefaultDimensions())
	style := DefaultStyle()
	for _, b := range Build(board, style) {
		k := board.At(b.Key)
		c := board.Center(k)
		assert.InDelta(t, k.SizeY+style.Lift, b.Position.Y, 1e-12)
		assert.GreaterOrEqual(t, b.Position.X, c.X-k.SizeX/2)
		assert.LessOrEqual(t, b.Position.X, c.X+k.SizeX/2)
		assert.GreaterOrEqual(t, b.Position.Z, c.Z-k.SizeZ/2)
		assert.LessOrEqual(t, b.Position.Z, c.Z+k.SizeZ/2)
		// offset from center, never on it
		assert.NotEqual(t, c.X, b.Position.X)
	}
}

func TestRasterizer(t *testing.T) {
	r, err := NewRasterizer(24, colorutil.White)
	require.NoError(t, err)
	defer r.Close()

	short := r.Render("A")
	long := r.Render("Backspace")
	assert.Greater(t, long.Bounds().Dx(), short.Bounds().Dx())
	assert.Equal(t, short.Bounds().Dy(), long.Bounds().Dy())

	var inked int
	for i := 3; i < len(long.Pix); i += 4 {
		if long.Pix[i] > 0 {
			inked++
		}
	}
	assert.Greater(t, inked, 0)

	tex := r.RenderAll([]Billboard{{Text: "Q"}, {Text: "W"}})
	require.Len(t, tex, 2)
	assert.Equal(t, "W", tex[1].Billboard.Text)
	assert.NotNil(t, tex[1].Image)
}
