package ocr

import (
	"fmt"
	"image"
	"math"

	"snatchboard/pkg/geometry"

	"gocv.io/x/gocv"
)

// preprocess straightens the tile, crops it, rescales it to the OCR
// resolution and binarises it. The caller owns the returned Mat.
func (e *Engine) preprocess(frame gocv.Mat, r geometry.RotatedRect) (gocv.Mat, error) {
	crop, err := cropUpright(frame, r)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer crop.Close()

	scale := scaleFactor(r.Size.Width, e.opts.TileLengthInches, e.opts.DPI)

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(crop, &resized, image.Point{}, scale, scale, gocv.InterpolationCubic)

	gray := gocv.NewMat()
	defer gray.Close()
	if resized.Channels() == 1 {
		resized.CopyTo(&gray)
	} else {
		gocv.CvtColor(resized, &gray, gocv.ColorBGRToGray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 5, Y: 5}, 0, 0, gocv.BorderDefault)

	binary := gocv.NewMat()
	gocv.Threshold(blurred, &binary, float32(e.opts.BinaryThreshold), 255, gocv.ThresholdBinary)
	return binary, nil
}

// cropUpright rotates the frame about the tile centre so the tile is axis
// aligned, then cuts it out.
func cropUpright(frame gocv.Mat, r geometry.RotatedRect) (gocv.Mat, error) {
	center := image.Point{X: int(math.Round(r.Center.X)), Y: int(math.Round(r.Center.Y))}

	rot := gocv.GetRotationMatrix2D(center, r.Angle, 1.0)
	defer rot.Close()

	rotated := gocv.NewMat()
	defer rotated.Close()
	gocv.WarpAffine(frame, &rotated, rot, image.Point{X: frame.Cols(), Y: frame.Rows()})

	bounds := cropBounds(r, rotated.Cols(), rotated.Rows())
	if bounds.Empty() {
		return gocv.NewMat(), fmt.Errorf("tile at %v lies outside the frame", r.Center)
	}

	region := rotated.Region(bounds)
	defer region.Close()
	return region.Clone(), nil
}

// cropBounds returns the axis-aligned box of an upright r, clipped to a
// w x h frame.
func cropBounds(r geometry.RotatedRect, w, h int) image.Rectangle {
	hw, hh := r.Size.Width/2, r.Size.Height/2
	box := image.Rect(
		int(math.Floor(r.Center.X-hw)), int(math.Floor(r.Center.Y-hh)),
		int(math.Ceil(r.Center.X+hw)), int(math.Ceil(r.Center.Y+hh)),
	)
	return box.Intersect(image.Rect(0, 0, w, h))
}

// scaleFactor maps a tile of widthPx pixels and lengthInches physical size
// to the target DPI.
func scaleFactor(widthPx, lengthInches float64, dpi int) float64 {
	if widthPx <= 0 || lengthInches <= 0 {
		return 1
	}
	tileDPI := widthPx / lengthInches
	return float64(dpi) / tileDPI
}
