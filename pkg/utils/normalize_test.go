package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizeToJPGResizes(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 100))

	out, err := NormalizeToJPG(encodePNG(t, src), 200, 90)
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestNormalizeToJPGKeepsSmallImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 30))

	out, err := NormalizeToJPG(encodePNG(t, src), 1600, 0)
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestNormalizeToJPGRejectsGarbage(t *testing.T) {
	_, err := NormalizeToJPG(nil, 0, 85)
	assert.Error(t, err)

	_, err = NormalizeToJPG([]byte("GIF89a not really"), 0, 85)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestApplyOrientation(t *testing.T) {
	// 2x1: red on the left, blue on the right
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	src.Set(0, 0, red)
	src.Set(1, 0, blue)

	cw := applyOrientation(src, 6)
	assert.Equal(t, image.Rect(0, 0, 1, 2), cw.Bounds())
	assert.Equal(t, red, cw.At(0, 0))
	assert.Equal(t, blue, cw.At(0, 1))

	flipped := applyOrientation(src, 2)
	assert.Equal(t, blue, flipped.At(0, 0))

	half := applyOrientation(src, 3)
	assert.Equal(t, blue, half.At(0, 0))

	assert.Same(t, src, applyOrientation(src, 1))
}

func TestReadAllLimit(t *testing.T) {
	b, err := ReadAllLimit(strings.NewReader("hello"), 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	_, err = ReadAllLimit(strings.NewReader("hello!"), 5)
	assert.ErrorIs(t, err, ErrTooLarge)
}
