package rough

import (
	"math"
	"math/rand"
	"time"

	"SketchBoard/internal/geometry"
)

const (
	// passes is how many times each outline is traced.
	passes = 2
	// maxStep is the longest straight run before an outline is subdivided.
	maxStep = 12.0
	// arcSteps is the number of samples per rounded corner.
	arcSteps = 6
	// ellipseSteps is the number of samples around an ellipse.
	ellipseSteps = 36
)

// Sketcher renders shapes as slightly wobbly double strokes. It is not safe
// for concurrent use.
type Sketcher struct {
	rng *rand.Rand
}

// NewSketcher returns a sketcher seeded with seed, or with the current time
// when seed is zero.
func NewSketcher(seed int64) *Sketcher {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Sketcher{rng: rand.New(rand.NewSource(seed))}
}

// Render implements Renderer. The bounds of the result are the logical
// bounds of the shape, not of the jittered strokes.
func (s *Sketcher) Render(shape geometry.Shape, style Style) Drawable {
	d := Drawable{
		Kind:        shape.Kind,
		StrokeWidth: style.StrokeWidth,
		Bounds:      shape.Bounds(),
	}

	switch p := shape.Primitive.(type) {
	case geometry.RoundedRect:
		d.Strokes = s.roughen(roundedRectOutline(p), style)
	case geometry.Oval:
		d.Strokes = s.roughen(ellipseOutline(p), style)
	case geometry.Segment:
		d.Strokes = s.roughen([]geometry.Point{p.From, p.To}, style)
	case geometry.ArrowPath:
		for _, seg := range p.Segments() {
			d.Strokes = append(d.Strokes, s.roughen([]geometry.Point{seg.From, seg.To}, style)...)
		}
	case geometry.Label:
		d.Text = &Text{At: p.At, Content: p.Content, Size: p.FontSize}
	}

	return d
}

// roughen traces the polyline once per pass, subdividing long edges, bowing
// each edge sideways and jittering every vertex.
func (s *Sketcher) roughen(points []geometry.Point, style Style) []Stroke {
	if len(points) == 0 {
		return nil
	}
	r := style.Roughness
	if r <= 0 {
		exact := make([]geometry.Point, len(points))
		copy(exact, points)
		return []Stroke{{Points: exact}}
	}

	strokes := make([]Stroke, 0, passes)
	for pass := 0; pass < passes; pass++ {
		out := []geometry.Point{s.jitter(points[0], r)}
		for i := 1; i < len(points); i++ {
			a, b := points[i-1], points[i]
			length := a.Distance(b)
			steps := max(1, int(math.Ceil(length/maxStep)))
			bow := style.Bowing * r * length / 200 * s.unit()

			var nx, ny float64
			if length > 0 {
				nx, ny = -(b.Y-a.Y)/length, (b.X-a.X)/length
			}
			for j := 1; j <= steps; j++ {
				t := float64(j) / float64(steps)
				off := bow * math.Sin(math.Pi*t)
				p := geometry.Point{
					X: a.X + (b.X-a.X)*t + nx*off,
					Y: a.Y + (b.Y-a.Y)*t + ny*off,
				}
				out = append(out, s.jitter(p, r/2))
			}
		}
		strokes = append(strokes, Stroke{Points: out})
	}
	return strokes
}

func (s *Sketcher) jitter(p geometry.Point, amount float64) geometry.Point {
	return geometry.Point{X: p.X + s.unit()*amount, Y: p.Y + s.unit()*amount}
}

// unit returns a uniform sample in [-1, 1).
func (s *Sketcher) unit() float64 {
	return s.rng.Float64()*2 - 1
}

// roundedRectOutline walks the box clockwise from the end of the top-left
// corner, closing back on the first point.
func roundedRectOutline(r geometry.RoundedRect) []geometry.Point {
	b := r.Box
	rad := math.Min(r.Radius, math.Min(b.Width, b.Height)/2)

	corners := []struct {
		center geometry.Point
		from   float64
	}{
		{geometry.Pt(b.X+b.Width-rad, b.Y+rad), -math.Pi / 2},
		{geometry.Pt(b.X+b.Width-rad, b.Y+b.Height-rad), 0},
		{geometry.Pt(b.X+rad, b.Y+b.Height-rad), math.Pi / 2},
		{geometry.Pt(b.X+rad, b.Y+rad), math.Pi},
	}

	points := []geometry.Point{geometry.Pt(b.X+rad, b.Y)}
	for _, c := range corners {
		for i := 0; i <= arcSteps; i++ {
			a := c.from + (math.Pi/2)*float64(i)/arcSteps
			points = append(points, geometry.Pt(c.center.X+rad*math.Cos(a), c.center.Y+rad*math.Sin(a)))
		}
	}
	return append(points, points[0])
}

func ellipseOutline(e geometry.Oval) []geometry.Point {
	rx, ry := e.Width/2, e.Height/2
	points := make([]geometry.Point, 0, ellipseSteps+1)
	for i := 0; i <= ellipseSteps; i++ {
		a := 2 * math.Pi * float64(i) / ellipseSteps
		points = append(points, geometry.Pt(e.Center.X+rx*math.Cos(a), e.Center.Y+ry*math.Sin(a)))
	}
	return points
}
