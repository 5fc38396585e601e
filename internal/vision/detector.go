// Package vision locates letter tiles in camera frames.
package vision

import (
	"fmt"
	"image"

	"snatchboard/pkg/geometry"

	"gocv.io/x/gocv"
)

// Detector finds square tile outlines in a frame.
type Detector struct {
	params Params
}

// NewDetector creates a Detector with the given parameters.
func NewDetector(params Params) *Detector {
	if params.BlurSize%2 == 0 {
		params.BlurSize++
	}
	return &Detector{params: params}
}

// Params returns the detector's parameters.
func (d *Detector) Params() Params {
	return d.params
}

// Locate finds tiles in a Go image. A MatImage is searched in place.
func (d *Detector) Locate(img image.Image) ([]geometry.RotatedRect, error) {
	if m, ok := img.(MatImage); ok {
		return d.LocateMat(m.Mat)
	}

	mat, err := ImageToMat(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	return d.LocateMat(mat)
}

// LocateMat finds tiles in a BGR frame. Tiles must be bright on a dark
// background: the frame is thresholded and each external contour is fitted
// with a minimum-area rectangle, keeping those that are square enough.
func (d *Detector) LocateMat(frame gocv.Mat) ([]geometry.RotatedRect, error) {
	if frame.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	binary := d.preprocess(frame)
	defer binary.Close()

	contours := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var rects []geometry.RotatedRect
	for i := 0; i < contours.Size(); i++ {
		r := toRotatedRect(gocv.MinAreaRect(contours.At(i)))
		if d.accept(r) {
			rects = append(rects, r)
		}
	}
	return rects, nil
}

func toRotatedRect(rr gocv.RotatedRect) geometry.RotatedRect {
	return geometry.NewRotatedRect(
		geometry.NewPoint2D(float64(rr.Center.X), float64(rr.Center.Y)),
		geometry.NewSize(float64(rr.Width), float64(rr.Height)),
		rr.Angle,
	)
}

// preprocess converts the frame to a binary mask of bright regions.
func (d *Detector) preprocess(frame gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() == 1 {
		frame.CopyTo(&gray)
	} else {
		gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := d.params.BlurSize
	gocv.GaussianBlur(gray, &blurred, image.Point{X: k, Y: k}, 0, 0, gocv.BorderDefault)

	binary := gocv.NewMat()
	gocv.Threshold(blurred, &binary, float32(d.params.BinaryThreshold), 255, gocv.ThresholdBinary)
	return binary
}

// accept reports whether r looks like a tile.
func (d *Detector) accept(r geometry.RotatedRect) bool {
	if r.Size.Height <= 0 || r.Area() < d.params.MinAreaPixels {
		return false
	}
	aspect := r.Size.Width / r.Size.Height
	return aspect >= d.params.MinAspectRatio && aspect <= d.params.MaxAspectRatio
}
