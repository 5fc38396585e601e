// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"math"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// Dot returns the dot product of p and other treated as vectors.
func (p Point2D) Dot(other Point2D) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Size represents a 2D size.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewSize creates a new Size.
func NewSize(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// Area returns width times height.
func (s Size) Area() float64 {
	return s.Width * s.Height
}

// RotatedRect is an oriented rectangle: a center, a size and a rotation in
// degrees (positive = clockwise in image coordinates, where Y grows down).
type RotatedRect struct {
	Center Point2D `json:"center"`
	Size   Size    `json:"size"`
	Angle  float64 `json:"angle"`
}

// NewRotatedRect creates a RotatedRect.
func NewRotatedRect(center Point2D, size Size, angle float64) RotatedRect {
	return RotatedRect{Center: center, Size: size, Angle: angle}
}

// Area returns the rectangle's area.
func (r RotatedRect) Area() float64 {
	return r.Size.Area()
}

// Corners returns the four corner points, walking around the rectangle.
func (r RotatedRect) Corners() [4]Point2D {
	hw := r.Size.Width / 2
	hh := r.Size.Height / 2
	rot := Rotation(r.Angle * math.Pi / 180.0)

	local := [4]Point2D{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
	var corners [4]Point2D
	for i, p := range local {
		corners[i] = rot.Apply(p).Add(r.Center)
	}
	return corners
}

// NormalizeAngle maps an angle in degrees into [-90, 90). A rectangle rotated
// by 180 degrees is the same rectangle, so no information is lost.
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg+90, 180)
	if a < 0 {
		a += 180
	}
	return a - 90
}

// AffineTransform represents a 2x3 affine transformation matrix.
// [a b tx]
// [c d ty]
type AffineTransform struct {
	A, B, TX float64
	C, D, TY float64
}

// Rotation returns a rotation transform around the origin.
func Rotation(radians float64) AffineTransform {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return AffineTransform{A: cos, B: -sin, C: sin, D: cos}
}

// Apply applies the transform to a point.
func (t AffineTransform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}
