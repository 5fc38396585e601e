package board

import (
	"snatchboard/internal/tile"
	"snatchboard/pkg/geometry"
)

// DefaultSlack is the bounding-box area multiplier used by
// BoundingBoxStrategy. Two touching tiles give a combined box of about twice
// a single tile's area; a gap inflates it quickly. Chosen empirically.
const DefaultSlack = 3.0

// BoundingBoxStrategy is BoundingBoxAdjacency with DefaultSlack.
var BoundingBoxStrategy = BoundingBoxAdjacency(DefaultSlack)

// BoundingBoxAdjacency returns a predicate under which two tiles are
// adjacent iff the minimum-area oriented rectangle enclosing all eight
// corners of both tiles has area below slack times their average area.
//
// The pair is evaluated in canonical key order, so the predicate is exactly
// symmetric even under floating-point rounding.
func BoundingBoxAdjacency(slack float64) AdjacencyFunc {
	return func(u, v tile.LetterTile) bool {
		if v.Key().Less(u.Key()) {
			u, v = v, u
		}

		cu := u.Rect.Corners()
		cv := v.Rect.Corners()
		points := make([]geometry.Point2D, 0, 8)
		points = append(points, cu[:]...)
		points = append(points, cv[:]...)

		box := geometry.MinAreaRect(points)

		averageTileArea := 0.5 * (u.Rect.Area() + v.Rect.Area())
		return box.Area() < slack*averageTileArea
	}
}
