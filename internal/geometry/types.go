// Package geometry provides the canvas-space types and pure shape geometry
// used by the sketch board.
package geometry

import (
	"math"
)

// Point is a position in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Box is an axis-aligned rectangle in canvas space.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BoxFromPoints returns the box spanned by two opposite corners, in any order.
func BoxFromPoints(a, b Point) Box {
	x, y := math.Min(a.X, b.X), math.Min(a.Y, b.Y)
	return Box{X: x, Y: y, Width: math.Abs(b.X - a.X), Height: math.Abs(b.Y - a.Y)}
}

// BoundingBox computes the axis-aligned bounding box of a set of points.
func BoundingBox(points ...Point) Box {
	if len(points) == 0 {
		return Box{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return Box{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// TopLeft returns the top-left corner.
func (b Box) TopLeft() Point { return Point{X: b.X, Y: b.Y} }

// TopRight returns the top-right corner.
func (b Box) TopRight() Point { return Point{X: b.X + b.Width, Y: b.Y} }

// BottomLeft returns the bottom-left corner.
func (b Box) BottomLeft() Point { return Point{X: b.X, Y: b.Y + b.Height} }

// BottomRight returns the bottom-right corner.
func (b Box) BottomRight() Point { return Point{X: b.X + b.Width, Y: b.Y + b.Height} }

// Center returns the center point of the box.
func (b Box) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Contains returns true if the point is inside the box, edges included.
func (b Box) Contains(p Point) bool {
	return p.X >= b.X && p.X <= b.X+b.Width &&
		p.Y >= b.Y && p.Y <= b.Y+b.Height
}

// Expand grows the box by pad on every side.
func (b Box) Expand(pad float64) Box {
	return Box{X: b.X - pad, Y: b.Y - pad, Width: b.Width + 2*pad, Height: b.Height + 2*pad}
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(other Box) Box {
	x := math.Min(b.X, other.X)
	y := math.Min(b.Y, other.Y)
	x2 := math.Max(b.X+b.Width, other.X+other.Width)
	y2 := math.Max(b.Y+b.Height, other.Y+other.Height)
	return Box{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}
