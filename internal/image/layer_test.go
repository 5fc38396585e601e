package image_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	img "snatchboard/internal/image"
)

func testPattern() *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, 8, 4))
	m.Set(1, 1, color.RGBA{R: 255, A: 255})
	return m
}

func TestLoad_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, testPattern()))
	require.NoError(t, f.Close())

	frame, err := img.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "png", frame.Format)
	assert.Equal(t, path, frame.Path)
	assert.Equal(t, 8, frame.Width())
	assert.Equal(t, 4, frame.Height())

	r, _, _, _ := frame.Image.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestLoad_TIFF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.TIF")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, tiff.Encode(f, testPattern(), nil))
	require.NoError(t, f.Close())

	frame, err := img.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tiff", frame.Format)
	assert.Equal(t, 8, frame.Width())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := img.Load(filepath.Join(dir, "notes.txt"))
	assert.ErrorIs(t, err, img.ErrUnsupportedFormat)

	_, err = img.Load(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = img.Load(garbage)
	assert.Error(t, err)
}

func TestIsSupportedFormat(t *testing.T) {
	assert.True(t, img.IsSupportedFormat("a/b/frame.JPEG"))
	assert.True(t, img.IsSupportedFormat("scan.tiff"))
	assert.False(t, img.IsSupportedFormat("scan.bmp"))
	assert.False(t, img.IsSupportedFormat("noext"))
}

func TestFrame_NilImage(t *testing.T) {
	var f img.Frame
	assert.Zero(t, f.Width())
	assert.Zero(t, f.Height())
}
