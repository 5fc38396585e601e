package vision

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// MatImage presents a BGR or grayscale gocv.Mat as an image.Image without
// copying pixels. Locate and the OCR engine recognise it and work on the
// Mat directly. The Mat must outlive the MatImage.
type MatImage struct {
	Mat gocv.Mat
}

func (m MatImage) ColorModel() color.Model { return color.RGBAModel }

func (m MatImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Mat.Cols(), m.Mat.Rows())
}

func (m MatImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(m.Bounds()) {
		return color.RGBA{}
	}
	ch := m.Mat.Channels()
	if ch == 1 {
		v := m.Mat.GetUCharAt(y, x)
		return color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return color.RGBA{
		R: m.Mat.GetUCharAt(y, x*ch+2),
		G: m.Mat.GetUCharAt(y, x*ch+1),
		B: m.Mat.GetUCharAt(y, x*ch),
		A: 255,
	}
}

// ImageToMat converts a Go image.Image to a gocv.Mat in BGR format.
// A MatImage is cloned rather than converted. The caller owns the
// returned Mat.
func ImageToMat(img image.Image) (gocv.Mat, error) {
	if m, ok := img.(MatImage); ok {
		return m.Mat.Clone(), nil
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return gocv.NewMat(), fmt.Errorf("empty image bounds %v", bounds)
	}

	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride != 4*bounds.Dx() {
		// Sub-images share their parent's stride; repack before handing
		// the pixel buffer to OpenCV.
		packed := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		for y := 0; y < bounds.Dy(); y++ {
			copy(packed.Pix[y*packed.Stride:(y+1)*packed.Stride], rgba.Pix[y*rgba.Stride:])
		}
		img = packed
	}

	return gocv.ImageToMatRGB(img)
}
