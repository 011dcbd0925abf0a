package rough

import (
	"SketchBoard/internal/geometry"
)

// Stroke is one polyline of a drawable.
type Stroke struct {
	Points []geometry.Point `json:"points"`
}

// Text is a run of text whose box starts at At.
type Text struct {
	At      geometry.Point `json:"at"`
	Content string         `json:"content"`
	Size    float64        `json:"size"`
}

// Drawable is the rendered form of one shape. It is never edited in place;
// any geometry change produces a new Drawable.
type Drawable struct {
	Kind        geometry.Kind `json:"kind"`
	Strokes     []Stroke      `json:"strokes,omitempty"`
	Text        *Text         `json:"text,omitempty"`
	StrokeWidth float64       `json:"strokeWidth"`
	Bounds      geometry.Box  `json:"bounds"`
}

// Renderer converts a shape's geometry and a style into a drawable.
type Renderer interface {
	Render(shape geometry.Shape, style Style) Drawable
}
