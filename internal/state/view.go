package state

import (
	"math"

	"SketchBoard/internal/geometry"
)

// View maps canvas space onto the screen: screen = canvas*Zoom + Pan.
type View struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
}

// NewView returns the identity view.
func NewView() View {
	return View{Zoom: 1}
}

// Pan returns the pan offset as a point.
func (v View) Pan() geometry.Point {
	return geometry.Point{X: v.PanX, Y: v.PanY}
}

// ToCanvas converts a screen position to canvas space.
func (v View) ToCanvas(screen geometry.Point) geometry.Point {
	return screen.Sub(v.Pan()).Scale(1 / v.Zoom)
}

// ToScreen converts a canvas position to screen space.
func (v View) ToScreen(p geometry.Point) geometry.Point {
	return p.Scale(v.Zoom).Add(v.Pan())
}

// Zoomed multiplies the zoom by factor, clamped to [lo, hi].
func (v View) Zoomed(factor, lo, hi float64) View {
	v.Zoom = math.Max(lo, math.Min(hi, v.Zoom*factor))
	return v
}
