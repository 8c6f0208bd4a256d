package app

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"sync/atomic"
	"testing"

	"keycap-atlas/internal/compositor"
	"keycap-atlas/internal/layout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTexture struct{ n atomic.Int32 }

func (c *countingTexture) MarkDirty() { c.n.Add(1) }

func newTestSession(t *testing.T) *Session {
	t.Helper()
	cfg := DefaultConfig()
	cfg.AtlasWidth, cfg.AtlasHeight = 64, 32
	s, err := NewSession(cfg)
	require.NoError(t, err)
	return s
}

func pngBytes(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNewSessionStartsFlat(t *testing.T) {
	s := newTestSession(t)
	assert.Nil(t, s.Board())
	assert.Nil(t, s.Keycaps())
	assert.Nil(t, s.Source())
	assert.Equal(t, s.Config().Background, s.Surface().At(10, 10))
}

func TestSetLayout(t *testing.T) {
	s := newTestSession(t)
	var got int
	s.On(EventLayoutChanged, func(interface{}) { got++ })

	board, err := s.SetLayout(layout.MustGet(layout.NameExtended))
	require.NoError(t, err)
	assert.Equal(t, 74, board.Len())
	assert.Len(t, s.Keycaps(), 74)
	assert.NotEmpty(t, s.Billboards())
	assert.Equal(t, 1, got)

	l := s.Layout()
	require.NotNil(t, l)
	assert.Equal(t, layout.NameExtended, l.Name)
	l.Rows = nil
	assert.NotEmpty(t, s.Layout().Rows)
}

func TestSetLayoutRejectsZeroWidth(t *testing.T) {
	s := newTestSession(t)
	_, err := s.SetLayout(layout.MustGet(layout.NameCompact))
	require.NoError(t, err)

	bad := &layout.Layout{Name: "bad", Rows: []layout.Row{layout.Keys(1, 0, 1)}}
	_, err = s.SetLayout(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, layout.ErrInvalidLayout))
	var le *layout.LayoutError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 0, le.Row)
	assert.Equal(t, 1, le.Key)

	// previous board survives
	assert.Equal(t, layout.NameCompact, s.Board().Name)
}

func TestKeycapsIsSnapshot(t *testing.T) {
	s := newTestSession(t)
	_, err := s.SetLayout(layout.MustGet(layout.NameCompact))
	require.NoError(t, err)

	caps := s.Keycaps()
	caps[0].SizeX = 99
	assert.NotEqual(t, 99.0, s.Keycaps()[0].SizeX)
}

func TestLoadImagePaintsAndMarksDirty(t *testing.T) {
	s := newTestSession(t)
	tex := &countingTexture{}
	s.BindTexture(tex)
	var loaded int
	s.On(EventImageLoaded, func(interface{}) { loaded++ })

	photo := color.RGBA{R: 200, G: 50, B: 50, A: 255}
	require.NoError(t, s.LoadImage(bytes.NewReader(pngBytes(t, 32, 16, photo))))

	assert.Equal(t, int32(1), tex.n.Load())
	assert.Equal(t, 1, loaded)
	assert.NotNil(t, s.Source())
	assert.Equal(t, photo, s.Surface().At(32, 16))
}

func TestLoadImageFailureLeavesAtlas(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.LoadImage(bytes.NewReader(pngBytes(t, 32, 16, color.RGBA{R: 9, G: 99, B: 199, A: 255}))))
	before := s.Surface().Snapshot()
	version := s.Surface().Version()

	var rejected error
	s.On(EventImageRejected, func(data interface{}) { rejected = data.(error) })

	err := s.LoadImage(strings.NewReader("definitely not an image"))
	require.Error(t, err)
	assert.Equal(t, err, rejected)
	assert.Equal(t, version, s.Surface().Version())
	assert.True(t, bytes.Equal(before.Pix, s.Surface().Snapshot().Pix))
}

func TestClearImage(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.LoadImage(bytes.NewReader(pngBytes(t, 8, 8, color.RGBA{R: 255, A: 255}))))

	s.OnClearImage()
	assert.Nil(t, s.Source())
	snap := s.Surface().Snapshot()
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			require.Equal(t, s.Config().Background, snap.RGBAAt(x, y))
		}
	}
}

func TestOnParamsChangedKeepsSource(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.LoadImage(bytes.NewReader(pngBytes(t, 32, 16, color.RGBA{G: 255, A: 255}))))
	src := s.Source()

	p := compositor.DefaultParams()
	p.Zoom = 0.5
	var repainted compositor.Params
	s.On(EventAtlasRepainted, func(data interface{}) { repainted = data.(compositor.Params) })
	s.OnParamsChanged(p)

	assert.Same(t, src, s.Source())
	assert.Equal(t, p, s.Params())
	assert.Equal(t, p, repainted)
	// zoomed out, so the corner shows the fill again
	assert.Equal(t, s.Config().Background, s.Surface().At(0, 0))
}

func TestNewSessionRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dimensions.Unit = 0
	_, err := NewSession(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.AtlasWidth = 0
	_, err = NewSession(cfg)
	assert.Error(t, err)
}
