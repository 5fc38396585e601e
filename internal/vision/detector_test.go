package vision

import (
	"image"
	"image/color"
	"image/draw"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snatchboard/pkg/geometry"
)

func blackFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return img
}

func fillWhite(img *image.RGBA, r image.Rectangle) {
	draw.Draw(img, r, image.NewUniform(color.White), image.Point{}, draw.Src)
}

func TestAccept(t *testing.T) {
	d := NewDetector(DefaultParams())
	center := geometry.NewPoint2D(50, 50)

	tests := []struct {
		name string
		size geometry.Size
		want bool
	}{
		{"square", geometry.NewSize(40, 40), true},
		{"slightly wide", geometry.NewSize(44, 40), true},
		{"too wide", geometry.NewSize(80, 40), false},
		{"too tall", geometry.NewSize(20, 40), false},
		{"noise", geometry.NewSize(5, 5), false},
		{"zero height", geometry.NewSize(40, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.accept(geometry.NewRotatedRect(center, tt.size, 0)))
		})
	}
}

func TestNewDetector_OddBlur(t *testing.T) {
	p := DefaultParams()
	p.BlurSize = 4
	assert.Equal(t, 5, NewDetector(p).Params().BlurSize)
}

func TestLocate_Squares(t *testing.T) {
	img := blackFrame(200, 120)
	fillWhite(img, image.Rect(20, 20, 60, 60))
	fillWhite(img, image.Rect(100, 30, 140, 70))
	fillWhite(img, image.Rect(20, 90, 180, 110)) // strip, wrong aspect

	rects, err := NewDetector(DefaultParams()).Locate(img)
	require.NoError(t, err)
	require.Len(t, rects, 2)

	sort.Slice(rects, func(i, j int) bool { return rects[i].Center.X < rects[j].Center.X })
	assert.InDelta(t, 39.5, rects[0].Center.X, 1.5)
	assert.InDelta(t, 39.5, rects[0].Center.Y, 1.5)
	assert.InDelta(t, 119.5, rects[1].Center.X, 1.5)
	assert.InDelta(t, 49.5, rects[1].Center.Y, 1.5)
	for _, r := range rects {
		assert.InDelta(t, 39, r.Size.Width, 3)
		assert.InDelta(t, 39, r.Size.Height, 3)
	}
}

func TestLocate_EmptyFrame(t *testing.T) {
	rects, err := NewDetector(DefaultParams()).Locate(blackFrame(64, 64))
	require.NoError(t, err)
	assert.Empty(t, rects)
}

func TestImageToMat(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 7, 6))
	img.Set(5, 5, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	mat, err := ImageToMat(img)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 1, mat.Rows())
	assert.Equal(t, 2, mat.Cols())
	assert.Equal(t, uint8(30), mat.GetUCharAt(0, 0))
	assert.Equal(t, uint8(20), mat.GetUCharAt(0, 1))
	assert.Equal(t, uint8(10), mat.GetUCharAt(0, 2))
}

func TestImageToMat_SubImage(t *testing.T) {
	img := blackFrame(10, 10)
	img.Set(4, 3, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	sub := img.SubImage(image.Rect(2, 2, 6, 5))

	mat, err := ImageToMat(sub)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 3, mat.Rows())
	assert.Equal(t, 4, mat.Cols())
	assert.Equal(t, uint8(50), mat.GetUCharAt(1, 2*3+0))
	assert.Equal(t, uint8(200), mat.GetUCharAt(1, 2*3+2))
	assert.Equal(t, uint8(0), mat.GetUCharAt(0, 0))
}

func TestImageToMat_EmptyBounds(t *testing.T) {
	mat, err := ImageToMat(image.NewRGBA(image.Rectangle{}))
	defer mat.Close()
	assert.Error(t, err)
}

func TestMatImage(t *testing.T) {
	src := blackFrame(8, 4)
	src.Set(5, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	mat, err := ImageToMat(src)
	require.NoError(t, err)
	defer mat.Close()

	img := MatImage{Mat: mat}
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, img.At(5, 2))
	assert.Equal(t, color.RGBA{A: 255}, img.At(0, 0))
	assert.Equal(t, color.RGBA{}, img.At(8, 0), "outside bounds")

	clone, err := ImageToMat(img)
	require.NoError(t, err)
	defer clone.Close()
	assert.Equal(t, uint8(30), clone.GetUCharAt(2, 5*3))
}

func TestLocate_MatImage(t *testing.T) {
	img := blackFrame(120, 80)
	fillWhite(img, image.Rect(40, 20, 80, 60))
	mat, err := ImageToMat(img)
	require.NoError(t, err)
	defer mat.Close()

	rects, err := NewDetector(DefaultParams()).Locate(MatImage{Mat: mat})
	require.NoError(t, err)
	require.Len(t, rects, 1)
	assert.InDelta(t, 59.5, rects[0].Center.X, 1.5)
	assert.InDelta(t, 39.5, rects[0].Center.Y, 1.5)
}

func TestAnnotate(t *testing.T) {
	img := blackFrame(60, 60)
	mat, err := ImageToMat(img)
	require.NoError(t, err)
	defer mat.Close()

	r := geometry.NewRotatedRect(geometry.NewPoint2D(30, 30), geometry.NewSize(20, 20), 0)
	DrawRect(&mat, r, OutlineColor, 1)

	// Outline passes through (20, 30) on the left edge; BGR green.
	assert.Equal(t, uint8(0), mat.GetUCharAt(30, 20*3+0))
	assert.Equal(t, uint8(255), mat.GetUCharAt(30, 20*3+1))
	// Interior stays black.
	assert.Equal(t, uint8(0), mat.GetUCharAt(25, 25*3+1))
}
