package geometry

import (
	"math"
	"sort"
)

// ConvexHull computes the convex hull of a set of points using Graham scan.
// Returns the points forming the convex hull in counter-clockwise order.
// Collinear points on hull edges are dropped.
func ConvexHull(points []Point2D) []Point2D {
	if len(points) < 3 {
		pts := make([]Point2D, len(points))
		copy(pts, points)
		return pts
	}

	// Make a copy to avoid modifying the input
	pts := make([]Point2D, len(points))
	copy(pts, points)

	// Find the point with lowest y (and leftmost if tied)
	lowest := 0
	for i := 1; i < len(pts); i++ {
		if pts[i].Y < pts[lowest].Y ||
			(pts[i].Y == pts[lowest].Y && pts[i].X < pts[lowest].X) {
			lowest = i
		}
	}

	// Swap to front
	pts[0], pts[lowest] = pts[lowest], pts[0]
	pivot := pts[0]

	// Sort by polar angle with respect to pivot, nearer first on ties
	sorted := pts[1:]
	sort.SliceStable(sorted, func(i, j int) bool {
		cross := crossProduct(pivot, sorted[i], sorted[j])
		if cross != 0 {
			return cross > 0
		}
		return distSq(pivot, sorted[i]) < distSq(pivot, sorted[j])
	})

	// Build hull
	hull := []Point2D{pivot}
	for _, p := range sorted {
		if p == pivot {
			continue
		}
		for len(hull) > 1 && crossProduct(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		if hull[len(hull)-1] == p {
			continue
		}
		hull = append(hull, p)
	}

	return hull
}

// MinAreaRect returns the minimum-area oriented rectangle enclosing points,
// using rotating calipers over the convex hull: the optimal rectangle has
// one side collinear with a hull edge. The returned angle is the direction
// of the Width side, normalized to [-90, 90).
//
// A single point yields a zero-size rectangle at that point; collinear
// points yield a rectangle of zero height along the segment.
func MinAreaRect(points []Point2D) RotatedRect {
	hull := ConvexHull(points)
	switch len(hull) {
	case 0:
		return RotatedRect{}
	case 1:
		return RotatedRect{Center: hull[0]}
	case 2:
		d := hull[1].Sub(hull[0])
		return RotatedRect{
			Center: hull[0].Add(d.Scale(0.5)),
			Size:   Size{Width: math.Hypot(d.X, d.Y)},
			Angle:  NormalizeAngle(math.Atan2(d.Y, d.X) * 180 / math.Pi),
		}
	}

	best := RotatedRect{}
	bestArea := math.Inf(1)
	n := len(hull)

	for i := 0; i < n; i++ {
		edge := hull[(i+1)%n].Sub(hull[i])
		length := math.Hypot(edge.X, edge.Y)
		if length == 0 {
			continue
		}
		u := edge.Scale(1 / length)   // along the edge
		v := Point2D{X: -u.Y, Y: u.X} // edge normal

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			pu := p.Dot(u)
			pv := p.Dot(v)
			minU = math.Min(minU, pu)
			maxU = math.Max(maxU, pu)
			minV = math.Min(minV, pv)
			maxV = math.Max(maxV, pv)
		}

		width := maxU - minU
		height := maxV - minV
		area := width * height
		if area < bestArea {
			bestArea = area
			midU := (minU + maxU) / 2
			midV := (minV + maxV) / 2
			best = RotatedRect{
				Center: u.Scale(midU).Add(v.Scale(midV)),
				Size:   Size{Width: width, Height: height},
				Angle:  NormalizeAngle(math.Atan2(u.Y, u.X) * 180 / math.Pi),
			}
		}
	}

	return best
}

// PolygonArea returns the absolute area of a simple polygon (shoelace formula).
func PolygonArea(polygon []Point2D) float64 {
	n := len(polygon)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
	}
	return math.Abs(sum) / 2
}

// crossProduct computes the cross product of vectors OA and OB.
func crossProduct(o, a, b Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// distSq computes the squared distance between two points.
func distSq(a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}
