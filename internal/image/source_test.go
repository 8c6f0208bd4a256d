package image

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	src, err := Decode(bytes.NewReader(encodePNG(t, 6, 3)))
	require.NoError(t, err)
	assert.Equal(t, "png", src.Format)
	assert.Equal(t, 6, src.Width())
	assert.Equal(t, 3, src.Height())
	assert.False(t, src.Empty())
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	src, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "bmp", src.Format)
}

func TestDecodeRejectsNonImage(t *testing.T) {
	_, err := Decode(strings.NewReader("definitely not a photo"))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecodeRejectsTruncated(t *testing.T) {
	data := encodePNG(t, 32, 32)
	_, err := Decode(bytes.NewReader(data[:40]))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 2, 2), 0o644))

	src, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, src.Path)

	_, err = Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrDecode)
}

func TestNilSourceIsEmpty(t *testing.T) {
	var src *Source
	assert.True(t, src.Empty())
	assert.True(t, FromImage(image.NewRGBA(image.Rect(0, 0, 0, 5))).Empty())
}
