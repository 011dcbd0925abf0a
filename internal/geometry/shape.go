package geometry

import (
	"fmt"
	"math"
)

const (
	// CornerRadius is the rounding applied to rectangles and squares.
	CornerRadius = 20.0
	// ArrowHeadLength is the length of each arrow barb.
	ArrowHeadLength = 15.0
	// ArrowHeadAngle is the half-angle between the shaft and a barb.
	ArrowHeadAngle = math.Pi / 6
	// TextFontSize is the font size of placed text.
	TextFontSize = 24.0
	// TextPlaceholder is the content of newly placed text.
	TextPlaceholder = "Text"
	// GlyphAdvance approximates the advance of one glyph as a fraction of the font size.
	GlyphAdvance = 0.6
)

// Shape is the computed geometry of a shape.
//
// Kind is always canonical. Start and End are the anchors that reproduce the
// drawn silhouette when passed back to Compute with Kind, so a square stored
// as a rectangle keeps its square anchors.
type Shape struct {
	Kind      Kind      `json:"kind"`
	Start     Point     `json:"start"`
	End       Point     `json:"end"`
	Primitive Primitive `json:"-"`
}

// Bounds returns the bounding box of the shape's primitive.
func (s Shape) Bounds() Box {
	return s.Primitive.Bounds()
}

// Compute builds the geometry of kind dragged from start to end.
func Compute(kind Kind, start, end Point) (Shape, error) {
	shape := Shape{Kind: kind.Canonical(), Start: start, End: end}

	switch kind {
	case Rectangle:
		shape.Primitive = RoundedRect{Box: BoxFromPoints(start, end), Radius: CornerRadius}

	case Square:
		dx, dy := end.X-start.X, end.Y-start.Y
		size := math.Min(math.Abs(dx), math.Abs(dy))
		x, y := start.X, start.Y
		if dx < 0 {
			x = start.X - size
		}
		if dy < 0 {
			y = start.Y - size
		}
		box := Box{X: x, Y: y, Width: size, Height: size}
		shape.Primitive = RoundedRect{Box: box, Radius: CornerRadius}
		shape.Start, shape.End = box.TopLeft(), box.BottomRight()

	case Ellipse:
		shape.Primitive = Oval{
			Center: BoundingBox(start, end).Center(),
			Width:  math.Abs(end.X - start.X),
			Height: math.Abs(end.Y - start.Y),
		}

	case Circle:
		d := start.Distance(end)
		c := Oval{Center: BoundingBox(start, end).Center(), Width: d, Height: d}
		shape.Primitive = c
		box := c.Bounds()
		shape.Start, shape.End = box.TopLeft(), box.BottomRight()

	case Line:
		shape.Primitive = Segment{From: start, To: end}

	case Arrow:
		shape.Primitive = arrowBetween(start, end)

	case Text:
		at := Point{X: math.Min(start.X, end.X), Y: math.Min(start.Y, end.Y)}
		shape.Primitive = Label{At: at, Content: TextPlaceholder, FontSize: TextFontSize}
		shape.Start, shape.End = at, at

	default:
		return Shape{}, fmt.Errorf("%w: %v", ErrUnsupportedKind, kind)
	}

	return shape, nil
}

// arrowBetween builds the shaft and barbs in the frame of the shaft, then
// rotates them by the shaft angle about start.
func arrowBetween(start, end Point) ArrowPath {
	dx, dy := end.X-start.X, end.Y-start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return ArrowPath{Shaft: Segment{From: start, To: start}, Barbs: [2]Point{start, start}}
	}

	angle := math.Atan2(dy, dx)
	cos, sin := math.Cos(angle), math.Sin(angle)
	rot := func(x, y float64) Point {
		return Point{X: start.X + x*cos - y*sin, Y: start.Y + x*sin + y*cos}
	}

	back := length - ArrowHeadLength*math.Cos(ArrowHeadAngle)
	side := ArrowHeadLength * math.Sin(ArrowHeadAngle)
	return ArrowPath{
		Shaft: Segment{From: start, To: rot(length, 0)},
		Barbs: [2]Point{rot(back, side), rot(back, -side)},
	}
}
