package atlas

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(0, 10)
	assert.Error(t, err)
	_, err = New(10, -1)
	assert.Error(t, err)
}

func TestFillAndVersion(t *testing.T) {
	s, err := New(8, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), s.Version())

	red := color.RGBA{R: 255, A: 255}
	s.Fill(red)
	assert.Equal(t, uint64(1), s.Version())
	assert.Equal(t, red, s.At(7, 3))
	assert.Equal(t, red, s.At(0, 0))
}

func TestSnapshotIsCopy(t *testing.T) {
	s, err := New(2, 2)
	require.NoError(t, err)
	s.Fill(color.RGBA{G: 255, A: 255})

	snap := s.Snapshot()
	snap.SetRGBA(0, 0, color.RGBA{})
	assert.Equal(t, color.RGBA{G: 255, A: 255}, s.At(0, 0))
}

func TestCopyPix(t *testing.T) {
	s, err := New(2, 2)
	require.NoError(t, err)
	s.Fill(color.RGBA{B: 10, A: 255})

	_, err = s.CopyPix(make([]byte, 3))
	assert.Error(t, err)

	buf := make([]byte, 16)
	v, err := s.CopyPix(buf)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
	assert.Equal(t, []byte{0, 0, 10, 255}, buf[:4])
}

func TestSampleOrientation(t *testing.T) {
	s, err := New(4, 2)
	require.NoError(t, err)
	top := color.RGBA{R: 255, A: 255}
	bottom := color.RGBA{B: 255, A: 255}
	s.Paint(func(dst *image.RGBA) {
		for x := 0; x < 4; x++ {
			dst.SetRGBA(x, 0, top)
			dst.SetRGBA(x, 1, bottom)
		}
	})

	assert.Equal(t, top, s.Sample(0.5, 0.9))
	assert.Equal(t, bottom, s.Sample(0.5, 0.1))
	assert.Equal(t, top, s.Sample(1, 1))
	assert.Equal(t, bottom, s.Sample(0, 0))
}
