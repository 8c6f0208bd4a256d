package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"keycap-atlas/internal/atlas"
	"keycap-atlas/internal/keycap"
	"keycap-atlas/internal/layout"
	"keycap-atlas/internal/mesh"
	"keycap-atlas/internal/overlay"
	"keycap-atlas/pkg/colorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMesh struct {
	box       *mesh.Box
	materials []Material
	pos       [3]float64
}

func (m *fakeMesh) SetPosition(x, y, z float64) {
	m.pos = [3]float64{x, y, z}
}

type fakeFactory struct {
	meshes []*fakeMesh
	failAt int
}

func (f *fakeFactory) NewMesh(box *mesh.Box, materials []Material) (Mesh, error) {
	if f.failAt > 0 && len(f.meshes) == f.failAt {
		return nil, errors.New("out of buffers")
	}
	m := &fakeMesh{box: box, materials: materials}
	f.meshes = append(f.meshes, m)
	return m, nil
}

func TestMaterials(t *testing.T) {
	mats := Materials(colorutil.KeycapSide)
	require.Len(t, mats, int(mesh.NumFaces))
	for f, m := range mats {
		assert.Equal(t, mesh.Face(f) == mesh.FaceTop, m.Atlas, "face %s", mesh.Face(f))
	}
}

func TestBuildScene(t *testing.T) {
	board := keycap.MustBuild(layout.Extended(), keycap.DefaultDimensions())
	f := &fakeFactory{}
	meshes, err := BuildScene(board, f, colorutil.KeycapSide)
	require.NoError(t, err)
	require.Len(t, meshes, board.Len())

	first := f.meshes[0]
	k := board.At(0)
	assert.InDelta(t, -board.Bounds.Width/2+k.SizeX/2, first.pos[0], 1e-12)
	assert.InDelta(t, k.SizeY/2, first.pos[1], 1e-12)
	assert.Equal(t, k.SizeX, first.box.SizeX)
	assert.True(t, first.materials[mesh.FaceTop].Atlas)
}

func TestBuildSceneFactoryError(t *testing.T) {
	board := keycap.MustBuild(layout.Compact(), keycap.DefaultDimensions())
	_, err := BuildScene(board, &fakeFactory{failAt: 3}, colorutil.KeycapSide)
	assert.ErrorContains(t, err, "key 3")
}

func TestTopViewKeepsImageUpright(t *testing.T) {
	l := &layout.Layout{Rows: []layout.Row{layout.Keys(1), layout.Keys(1)}}
	board := keycap.MustBuild(l, keycap.Dimensions{Unit: 1, Gap: 0, KeyHeight: 0.5})

	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	s, err := atlas.New(4, 8)
	require.NoError(t, err)
	s.Paint(func(dst *image.RGBA) {
		for y := 0; y < 8; y++ {
			c := red
			if y >= 4 {
				c = blue
			}
			for x := 0; x < 4; x++ {
				dst.SetRGBA(x, y, c)
			}
		}
	})

	view, err := TopView(board, s, 10, colorutil.Black)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 20), view.Bounds())
	assert.Equal(t, red, view.RGBAAt(5, 2))
	assert.Equal(t, blue, view.RGBAAt(5, 17))
}

func TestTopViewShowsGaps(t *testing.T) {
	l := &layout.Layout{Rows: []layout.Row{layout.Keys(1, 1)}}
	board := keycap.MustBuild(l, keycap.Dimensions{Unit: 1, Gap: 0.5, KeyHeight: 0.5})
	s, err := atlas.New(8, 8)
	require.NoError(t, err)
	s.Fill(colorutil.White)

	view, err := TopView(board, s, 10, colorutil.Black)
	require.NoError(t, err)
	assert.Equal(t, colorutil.White, view.RGBAAt(5, 5))
	assert.Equal(t, colorutil.Black, view.RGBAAt(12, 5))
	assert.Equal(t, colorutil.White, view.RGBAAt(20, 5))

	_, err = TopView(board, s, 0, colorutil.Black)
	assert.Error(t, err)
}

func TestDrawLegendsAtAnchor(t *testing.T) {
	l := &layout.Layout{Rows: []layout.Row{{layout.Key(1, "A"), layout.Key(1, "")}}}
	board := keycap.MustBuild(l, keycap.Dimensions{Unit: 1, Gap: 0, KeyHeight: 0.5})
	s, err := atlas.New(4, 4)
	require.NoError(t, err)
	s.Fill(colorutil.Black)

	view, err := TopView(board, s, 100, colorutil.Black)
	require.NoError(t, err)

	style := overlay.DefaultStyle()
	billboards := overlay.Build(board, style)
	require.Len(t, billboards, 1)

	glyph := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(glyph, glyph.Bounds(), image.NewUniform(colorutil.White), image.Point{}, draw.Src)
	DrawLegends(view, board, []overlay.Texture{{Billboard: billboards[0], Image: glyph}}, 100)

	// anchor is InsetX across and InsetZ down the first key
	x := int(style.InsetX * 100)
	y := int(style.InsetZ * 100)
	assert.Equal(t, colorutil.White, view.RGBAAt(x+1, y))
	assert.Equal(t, colorutil.Black, view.RGBAAt(x-2, y))
	assert.Equal(t, colorutil.Black, view.RGBAAt(150, y))
}

func TestDrawLegendsRasterized(t *testing.T) {
	board := keycap.MustBuild(layout.Extended(), keycap.DefaultDimensions())
	s, err := atlas.New(64, 32)
	require.NoError(t, err)
	s.Fill(colorutil.Black)
	view, err := TopView(board, s, 40, colorutil.Black)
	require.NoError(t, err)
	before := append([]byte(nil), view.Pix...)

	r, err := overlay.NewRasterizer(overlay.DefaultStyle().TextSize*40, colorutil.White)
	require.NoError(t, err)
	defer r.Close()
	DrawLegends(view, board, r.RenderAll(overlay.Build(board, overlay.DefaultStyle())), 40)

	assert.NotEqual(t, before, view.Pix)
}
