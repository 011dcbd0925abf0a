package geometry

// Primitive is the geometric description of a shape handed to the sketch
// renderer. Bounds is the logical extent used for selection and resizing.
type Primitive interface {
	Bounds() Box
	primitive()
}

// RoundedRect is a box drawn with rounded corners. Its bounds are the
// unrounded box.
type RoundedRect struct {
	Box    Box     `json:"box"`
	Radius float64 `json:"radius"`
}

// Oval is an axis-aligned ellipse. A circle has Width == Height.
type Oval struct {
	Center Point   `json:"center"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Segment is a straight line.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// ArrowPath is a shaft plus two barbs meeting at Shaft.To.
type ArrowPath struct {
	Shaft Segment  `json:"shaft"`
	Barbs [2]Point `json:"barbs"`
}

// Label is literal text whose box starts at At (top-left).
type Label struct {
	At       Point   `json:"at"`
	Content  string  `json:"content"`
	FontSize float64 `json:"fontSize"`
}

func (r RoundedRect) Bounds() Box { return r.Box }

func (e Oval) Bounds() Box {
	return Box{
		X:      e.Center.X - e.Width/2,
		Y:      e.Center.Y - e.Height/2,
		Width:  e.Width,
		Height: e.Height,
	}
}

func (s Segment) Bounds() Box { return BoundingBox(s.From, s.To) }

func (a ArrowPath) Bounds() Box {
	return BoundingBox(a.Shaft.From, a.Shaft.To, a.Barbs[0], a.Barbs[1])
}

func (l Label) Bounds() Box {
	return Box{
		X:      l.At.X,
		Y:      l.At.Y,
		Width:  float64(len([]rune(l.Content))) * l.FontSize * GlyphAdvance,
		Height: l.FontSize,
	}
}

// Segments returns the three strokes of the arrow: shaft then both barbs.
func (a ArrowPath) Segments() []Segment {
	return []Segment{
		a.Shaft,
		{From: a.Shaft.To, To: a.Barbs[0]},
		{From: a.Shaft.To, To: a.Barbs[1]},
	}
}

func (RoundedRect) primitive() {}
func (Oval) primitive()        {}
func (Segment) primitive()     {}
func (ArrowPath) primitive()   {}
func (Label) primitive()       {}
