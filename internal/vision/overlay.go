package vision

import (
	"image"
	"image/color"
	"math"

	"snatchboard/internal/tile"
	"snatchboard/pkg/geometry"

	"gocv.io/x/gocv"
)

// Overlay colors.
var (
	OutlineColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	LetterColor  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// Annotate draws each tile's outline and recognised letter onto frame.
func Annotate(frame *gocv.Mat, tiles []tile.LetterTile) {
	for _, t := range tiles {
		DrawRect(frame, t.Rect, OutlineColor, 2)
		gocv.PutText(frame, string(t.Letter), toPoint(t.Rect.Center),
			gocv.FontHersheySimplex, 0.5, LetterColor, 1)
	}
}

// DrawRect draws the outline of r.
func DrawRect(frame *gocv.Mat, r geometry.RotatedRect, c color.RGBA, thickness int) {
	corners := r.Corners()
	for i := range corners {
		gocv.Line(frame, toPoint(corners[i]), toPoint(corners[(i+1)%len(corners)]), c, thickness)
	}
}

func toPoint(p geometry.Point2D) image.Point {
	return image.Point{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}
